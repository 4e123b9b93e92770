package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	WSConnections   prometheus.Gauge
	OrdersSettled   prometheus.Counter
	SettledAmount   prometheus.Counter
	Notifications   *prometheus.CounterVec
	WorkerRuns      *prometheus.CounterVec
	Errors          *prometheus.CounterVec
}

// DefaultNamespace используется, когда пространство имен не задано конфигом.
const DefaultNamespace = "collabhub"

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, path and status.",
			}, []string{"method", "path", "status"}),
			HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency distribution of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "path"}),
			WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_connections",
				Help:      "Currently open websocket connections.",
			}),
			OrdersSettled: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_settled_total",
				Help:      "Total orders settled.",
			}),
			SettledAmount: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settled_amount_total",
				Help:      "Total amount credited to creators.",
			}),
			Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Total notifications created by type.",
			}, []string{"type"}),
			WorkerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "worker_runs_total",
				Help:      "Total background worker runs by worker and outcome.",
			}, []string{"worker", "status"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.HTTPRequests,
			metricsInstance.HTTPLatency,
			metricsInstance.WSConnections,
			metricsInstance.OrdersSettled,
			metricsInstance.SettledAmount,
			metricsInstance.Notifications,
			metricsInstance.WorkerRuns,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
