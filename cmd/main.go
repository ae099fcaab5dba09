package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thiagobazzo/formulario-inscricao/api"
	"github.com/thiagobazzo/formulario-inscricao/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	settings := getServerSettingsFromEnv()

	store, err := sqlite.Open(settings.DBPath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", settings.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("Failed to migrate store", "error", err)
		os.Exit(1)
	}

	registrationAPI := api.NewAPI(store, logger, settings.Env)

	s := &http.Server{
		Handler: registrationAPI.Routes(),
		Addr:    net.JoinHostPort(settings.Host, settings.Port),
	}

	go func() {
		logger.Info("Server listening", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down cleanly", "error", err)
	}
}

type ServerSettings struct {
	Host   string
	Port   string
	DBPath string
	Env    api.Env
}

func getServerSettingsFromEnv() ServerSettings {
	env := api.LOCAL
	if getEnvOrDefault("ENV", "local") == "prod" {
		env = api.PROD
	}

	return ServerSettings{
		Host:   getEnvOrDefault("HOST", "0.0.0.0"),
		Port:   getEnvOrDefault("PORT", "8080"),
		DBPath: getEnvOrDefault("DB_PATH", "tournament.db"),
		Env:    env,
	}
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultVal
}
