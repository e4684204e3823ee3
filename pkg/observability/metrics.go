package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service. Each instance
// owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	IngestedChunks  *prometheus.CounterVec
	Retrievals      *prometheus.CounterVec
	ExternalErrors  *prometheus.CounterVec
	StageLatency    *prometheus.HistogramVec
	ArchivedMessage prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by route and outcome.",
		}, []string{"route", "outcome"}),
		IngestedChunks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_chunks_total",
			Help:      "Chunks written to the knowledge store by document type.",
		}, []string{"type"}),
		Retrievals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrievals_total",
			Help:      "Knowledge store queries by result (empty or hit).",
		}, []string{"result"}),
		ExternalErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_errors_total",
			Help:      "Failed calls to external dependencies.",
		}, []string{"dependency"}),
		StageLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_latency_ms",
			Help:      "Pipeline stage latency in milliseconds.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		}, []string{"stage"}),
		ArchivedMessage: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archived_messages_total",
			Help:      "Conversation turns archived to the database.",
		}),
	}
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageLatency.WithLabelValues(stage).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) CountRequest(route, outcome string) {
	m.Requests.WithLabelValues(route, outcome).Inc()
}

func (m *Metrics) CountRetrieval(hits int) {
	result := "hit"
	if hits == 0 {
		result = "empty"
	}
	m.Retrievals.WithLabelValues(result).Inc()
}

func (m *Metrics) CountExternalError(dependency string) {
	m.ExternalErrors.WithLabelValues(dependency).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
