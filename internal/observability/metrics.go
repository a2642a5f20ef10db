package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry so several
// instances (tests, multiple servers) never collide.
type Metrics struct {
	registry *prometheus.Registry

	Extractions         *prometheus.CounterVec
	FieldsFilled        *prometheus.CounterVec
	RulesFiredTotal     *prometheus.CounterVec
	ExternalFailures    *prometheus.CounterVec
	Generations         *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors, plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vacancy_extractions_total",
			Help: "Number of texts run through field extraction, by source kind",
		}, []string{"source"}),
		FieldsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vacancy_fields_filled_total",
			Help: "Number of empty fields filled by a merge, by source kind",
		}, []string{"source"}),
		RulesFiredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vacancy_enrichment_rules_fired_total",
			Help: "Number of enrichment rule applications that changed a record",
		}, []string{"rule"}),
		ExternalFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vacancy_external_failures_total",
			Help: "Failed calls to external services",
		}, []string{"service", "operation"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vacancy_generations_total",
			Help: "LLM content generations by kind and outcome",
		}, []string{"kind", "outcome"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vacancy_active_sessions",
			Help: "Number of wizard sessions held in memory",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(
		m.Extractions,
		m.FieldsFilled,
		m.RulesFiredTotal,
		m.ExternalFailures,
		m.Generations,
		m.ActiveSessions,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Extraction records one ingest.
func (m *Metrics) Extraction(source string, filled int) {
	m.Extractions.WithLabelValues(source).Inc()
	m.FieldsFilled.WithLabelValues(source).Add(float64(filled))
}

// RulesFired records enrichment rules that changed a record.
func (m *Metrics) RulesFired(names []string) {
	for _, name := range names {
		m.RulesFiredTotal.WithLabelValues(name).Inc()
	}
}

// ExternalFailure returns a hook counting failures of service.
func (m *Metrics) ExternalFailure(service string) func(op string, err error) {
	return func(op string, _ error) {
		m.ExternalFailures.WithLabelValues(service, op).Inc()
	}
}

// Generation records one content generation.
func (m *Metrics) Generation(kind string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	m.Generations.WithLabelValues(kind, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration. route names the route
// pattern of the request; when it returns "" the URL path is used.
func (m *Metrics) Middleware(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			name := ""
			if route != nil {
				name = route(r)
			}
			if name == "" {
				name = r.URL.Path
			}
			m.HTTPRequestsTotal.WithLabelValues(name, r.Method, strconv.Itoa(rec.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(name, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
