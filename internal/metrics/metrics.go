package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Task metrics
	TaskExecutionsTotal   *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec

	// Routing metrics
	RoutingDecisionsTotal *prometheus.CounterVec

	// Gateway metrics
	GatewayCallsTotal   *prometheus.CounterVec
	GatewayCallDuration *prometheus.HistogramVec

	// Entity metrics
	SessionsCreatedTotal  prometheus.Counter
	AgentsRegisteredTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		TaskExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_executions_total",
				Help: "Total number of task executions",
			},
			[]string{"agent_id", "status"},
		),
		TaskExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "task_execution_duration_seconds",
				Help:    "Duration of task executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"agent_id"},
		),
		RoutingDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routing_decisions_total",
				Help: "Total number of routing decisions by outcome",
			},
			[]string{"outcome"},
		),
		GatewayCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_calls_total",
				Help: "Total number of completion gateway calls",
			},
			[]string{"provider", "outcome"},
		),
		GatewayCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_call_duration_seconds",
				Help:    "Duration of completion gateway calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		SessionsCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		AgentsRegisteredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "agents_registered_total",
				Help: "Total number of agent registrations",
			},
		),
	}

	registry.MustRegister(
		m.TaskExecutionsTotal,
		m.TaskExecutionDuration,
		m.RoutingDecisionsTotal,
		m.GatewayCallsTotal,
		m.GatewayCallDuration,
		m.SessionsCreatedTotal,
		m.AgentsRegisteredTotal,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
