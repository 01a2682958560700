package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plcstub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plcstub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	tagOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plcstub",
			Subsystem: "tag",
			Name:      "operations_total",
			Help:      "Tag operations by kind and result status.",
		},
		[]string{"op", "status"},
	)
	tagOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plcstub",
			Subsystem: "tag",
			Name:      "operation_duration_seconds",
			Help:      "Tag operation duration in seconds, callbacks included.",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 1e-2},
		},
		[]string{"op"},
	)
	tagCallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plcstub",
			Subsystem: "tag",
			Name:      "callback_events_total",
			Help:      "Lifecycle events delivered to registered callbacks.",
		},
		[]string{"event"},
	)
	tagsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "plcstub",
			Subsystem: "tag",
			Name:      "live",
			Help:      "Tags currently held by the registry.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, tagOps, tagOpDuration, tagCallbacks, tagsLive)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordTagOp counts one orchestrator operation. status is the label form of
// the result code.
func RecordTagOp(op, status string, duration time.Duration) {
	RegisterMetrics()
	tagOps.WithLabelValues(op, status).Inc()
	tagOpDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func RecordCallbackEvent(event string) {
	RegisterMetrics()
	tagCallbacks.WithLabelValues(event).Inc()
}

func SetLiveTags(n int) {
	RegisterMetrics()
	tagsLive.Set(float64(n))
}
