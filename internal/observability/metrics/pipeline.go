package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	verifyTotal    *prometheus.CounterVec
	verifyDuration *prometheus.HistogramVec
	verifyInFlight prometheus.Gauge
	backendCalls   *prometheus.CounterVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	verifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "examverify",
			Subsystem: "pipeline",
			Name:      "verification_total",
			Help:      "Total verification requests by status and error kind.",
		},
		[]string{"service", "status", "error_kind"},
	)
	verifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "examverify",
			Subsystem: "pipeline",
			Name:      "verification_duration_seconds",
			Help:      "Verification pipeline duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	verifyInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "examverify",
			Subsystem: "pipeline",
			Name:      "verification_in_flight",
			Help:      "Number of in-flight verification requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	backendCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "examverify",
			Subsystem: "pipeline",
			Name:      "backend_call_total",
			Help:      "Total classification backend calls by backend mode.",
		},
		[]string{"service", "backend"},
	)

	registry.MustRegister(verifyTotal, verifyDuration, verifyInFlight, backendCalls)

	return &PipelineMetrics{
		registry:       registry,
		verifyTotal:    verifyTotal,
		verifyDuration: verifyDuration,
		verifyInFlight: verifyInFlight,
		backendCalls:   backendCalls,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartVerification() {
	m.verifyInFlight.Inc()
}

func (m *PipelineMetrics) FinishVerification(service string, duration time.Duration, errKind string) {
	m.verifyInFlight.Dec()

	status := "success"
	if errKind != "" {
		status = "error"
	} else {
		errKind = "none"
	}

	m.verifyTotal.WithLabelValues(service, status, errKind).Inc()
	m.verifyDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveBackendCall(service, backend string) {
	m.backendCalls.WithLabelValues(service, backend).Inc()
}
