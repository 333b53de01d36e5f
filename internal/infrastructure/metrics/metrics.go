// Package metrics exposes Prometheus metrics for HTTP traffic and the order flow.
package metrics

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/domain/shared"
)

// Prometheus metric names.
const (
	MetricHTTPRequestsTotal     = "qrdine_http_requests_total"
	MetricHTTPRequestDuration   = "qrdine_http_request_duration_seconds"
	MetricOrdersPlacedTotal     = "qrdine_orders_placed_total"
	MetricOrderTransitionsTotal = "qrdine_order_transitions_total"
	MetricOrderItemsAdvanced    = "qrdine_order_items_advanced_total"
	MetricOrdersReopenedTotal   = "qrdine_orders_reopened_total"
	MetricOrderReadyMinutes     = "qrdine_order_ready_minutes"
)

// Registry owns every collector of the service. It uses its own
// prometheus.Registry so tests and multiple instances never collide.
type Registry struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersPlaced     prometheus.Counter
	orderTransitions *prometheus.CounterVec
	itemsAdvanced    *prometheus.CounterVec
	ordersReopened   prometheus.Counter
	readyMinutes     prometheus.Histogram
}

// NewRegistry creates the collectors. Go runtime and process collectors are included.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDuration,
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricOrdersPlacedTotal,
			Help: "Total number of placed orders",
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOrderTransitionsTotal,
			Help: "Order status transitions",
		}, []string{"from", "to"}),
		itemsAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOrderItemsAdvanced,
			Help: "Order item status transitions",
		}, []string{"to"}),
		ordersReopened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricOrdersReopenedTotal,
			Help: "Total number of batches appended to existing orders",
		}),
		readyMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricOrderReadyMinutes,
			Help:    "Minutes from placement until the order was ready",
			Buckets: []float64{2, 5, 10, 15, 20, 30, 45, 60},
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.ordersPlaced,
		r.orderTransitions,
		r.itemsAdvanced,
		r.ordersReopened,
		r.readyMinutes,
	)
	return r
}

// RegisterDatabase exports the connection pool stats of db as go_sql_* series
func (r *Registry) RegisterDatabase(db *sql.DB, name string) {
	r.registry.MustRegister(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gather returns the current metric families
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}

// Middleware records request count and latency. Unmatched routes are
// grouped under a single label to keep cardinality bounded.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}

// OrderMetrics is an event handler feeding the order collectors
type OrderMetrics struct {
	registry *Registry
}

// NewOrderMetrics creates the handler
func NewOrderMetrics(r *Registry) *OrderMetrics {
	return &OrderMetrics{registry: r}
}

// EventTypes implements shared.EventHandler
func (m *OrderMetrics) EventTypes() []string {
	return ordering.OrderEventTypes()
}

// Handle implements shared.EventHandler
func (m *OrderMetrics) Handle(_ context.Context, e shared.DomainEvent) error {
	switch ev := e.(type) {
	case *ordering.OrderPlacedEvent:
		m.registry.ordersPlaced.Inc()
	case *ordering.OrderStatusChangedEvent:
		m.registry.orderTransitions.WithLabelValues(ev.FromStatus.String(), ev.ToStatus.String()).Inc()
		if ev.ToStatus == ordering.OrderStatusReady {
			m.registry.readyMinutes.Observe(float64(ev.AgeSeconds) / 60)
		}
	case *ordering.OrderItemStatusChangedEvent:
		m.registry.itemsAdvanced.WithLabelValues(ev.ToStatus.String()).Inc()
	case *ordering.OrderReopenedEvent:
		m.registry.ordersReopened.Inc()
	}
	return nil
}

var _ shared.EventHandler = (*OrderMetrics)(nil)
