package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizcard"

// Failure stages of pass issuance.
const (
	StageValidation  = "validation"
	StagePersistence = "persistence"
	StageRender      = "render"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	PassesIssued        *prometheus.CounterVec
	PassFailures        *prometheus.CounterVec
	DefaultPlaceWrites  *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PassesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_issued_total",
			Help:      "Total number of wallet passes issued by locale",
		}, []string{"locale"}),
		PassFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pass_failures_total",
			Help:      "Total number of failed pass requests by stage",
		}, []string{"stage"}),
		DefaultPlaceWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "default_place_writes_total",
			Help:      "Total number of default place writes by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementPassesIssued(locale string) {
	m.PassesIssued.WithLabelValues(locale).Inc()
}

func (m *Metrics) IncrementPassFailures(stage string) {
	m.PassFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncrementDefaultPlaceWrites(result string) {
	m.DefaultPlaceWrites.WithLabelValues(result).Inc()
}
