// Package api is the thin transport collaborator over the registration
// pipeline: routing, JSON envelopes and middleware. Business rules live
// in the registration package; this layer only invokes and renders.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

type Env int

const (
	LOCAL Env = iota
	PROD
)

type DB interface {
	registration.Repository
	Ping(ctx context.Context) error
}

type API struct {
	db      DB
	logger  *slog.Logger
	env     Env
	metrics *metrics
}

func NewAPI(db DB, logger *slog.Logger, env Env) *API {
	return &API{
		db:      db,
		logger:  logger,
		env:     env,
		metrics: newMetrics(),
	}
}

func (a *API) Routes() http.Handler {
	r := http.NewServeMux()

	r.HandleFunc("POST /register", a.register)
	r.HandleFunc("GET /registrations", a.listRegistrations)
	r.HandleFunc("GET /statistics", a.statistics)
	r.HandleFunc("GET /receipt/{id}", a.receipt)
	r.HandleFunc("GET /export", a.export)
	r.HandleFunc("GET /healthz", a.health)
	r.Handle("GET /metrics", promhttp.HandlerFor(a.metrics.registry, promhttp.HandlerOpts{}))

	return useMiddlewares(r,
		a.loggingMiddleware(),
		a.requestIDMiddleware(),
		a.corsMiddleware(),
	)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if err := a.db.Ping(r.Context()); err != nil {
		a.logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, InternalError, "Store is unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
