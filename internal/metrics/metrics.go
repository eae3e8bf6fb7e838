package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bigcalc"

// Metrics holds the Prometheus collectors of one bigcalc process. Each
// instance owns its registry, so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	evaluations         *prometheus.CounterVec
	evalDuration        prometheus.Histogram
	verifyCases         *prometheus.CounterVec
	verifyMismatches    *prometheus.CounterVec
	activeVerifications prometheus.Gauge
	scrapes             prometheus.Counter
}

// NewMetrics creates and registers the bigcalc collectors together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Expressions evaluated, by result.",
		}, []string{"result"}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating one expression.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		verifyCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_cases_total",
			Help:      "Operations cross-checked against a reference oracle.",
		}, []string{"op"}),
		verifyMismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_mismatches_total",
			Help:      "Operations whose result disagreed with a reference oracle.",
		}, []string{"oracle", "op"}),
		activeVerifications: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_verifications",
			Help:      "Verification runs in progress.",
		}),
		scrapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrapes_total",
			Help:      "Requests served by the metrics endpoint.",
		}),
	}

	mem := NewMemoryCollector()
	reg.MustRegister(
		m.evaluations,
		m.evalDuration,
		m.verifyCases,
		m.verifyMismatches,
		m.activeVerifications,
		m.scrapes,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Bytes of allocated heap objects.",
		}, func() float64 { return float64(mem.Snapshot().HeapAlloc) }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveEvaluation records one expression evaluation.
func (m *Metrics) ObserveEvaluation(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.evaluations.WithLabelValues(result).Inc()
	m.evalDuration.Observe(d.Seconds())
}

// ObserveVerifyCase records one cross-checked operation.
func (m *Metrics) ObserveVerifyCase(op string) {
	m.verifyCases.WithLabelValues(op).Inc()
}

// ObserveMismatch records one disagreement with oracle on op.
func (m *Metrics) ObserveMismatch(oracle, op string) {
	m.verifyMismatches.WithLabelValues(oracle, op).Inc()
}

// VerificationStarted increments the active verification gauge.
func (m *Metrics) VerificationStarted() { m.activeVerifications.Inc() }

// VerificationFinished decrements the active verification gauge.
func (m *Metrics) VerificationFinished() { m.activeVerifications.Dec() }

// WritePrometheus writes all metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.scrapes.Inc()
	m.handler.ServeHTTP(w, r)
}
