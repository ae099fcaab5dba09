package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics tracks intake outcomes and request volume. Each API owns its
// registry so tests can construct as many instances as they need.
type metrics struct {
	registry *prometheus.Registry

	registrationsAccepted  prometheus.Counter
	registrationsRejected  prometheus.Counter
	registrationsDuplicate prometheus.Counter
	requestsTotal          *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		registrationsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "inscricao_registrations_accepted_total",
			Help: "Total number of registrations accepted and persisted",
		}),
		registrationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "inscricao_registrations_rejected_total",
			Help: "Total number of registrations rejected by eligibility rules",
		}),
		registrationsDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Name: "inscricao_registrations_duplicate_total",
			Help: "Total number of registrations refused as duplicate identities",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inscricao_http_requests_total",
			Help: "Total number of HTTP requests served",
		}, []string{"method", "path", "status"}),
	}
}
