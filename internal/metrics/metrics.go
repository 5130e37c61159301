package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the process collectors on a private registry so tests
// can build as many as they like.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	lockWait    prometheus.Histogram
	busy        prometheus.Counter
	queryErrors prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "names",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "names",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "names",
			Subsystem: "store",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the store connection lock.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 2, 5},
		}),
		busy: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "names",
			Subsystem: "store",
			Name:      "busy_total",
			Help:      "Queries rejected because the lock wait ran out.",
		}),
		queryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "names",
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Queries that failed against the store.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.lockWait,
		m.busy,
		m.queryErrors,
	)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	m.lockWait.Observe(d.Seconds())
}

func (m *Metrics) StoreBusy() {
	m.busy.Inc()
}

func (m *Metrics) QueryFailed() {
	m.queryErrors.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
