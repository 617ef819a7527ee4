// Package metrics provides Prometheus instrumentation: the standard HTTP
// request metrics plus counters for the storefront's domain events.
//
// Wire once in the HTTP kernel:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atelier",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "atelier",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// SalesRegistered counts completed sale registrations.
	SalesRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "atelier",
		Subsystem: "store",
		Name:      "sales_registered_total",
		Help:      "Total sales recorded in the ledger.",
	})

	// StockAdjustments counts stock writes by direction.
	StockAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atelier",
			Subsystem: "store",
			Name:      "stock_adjustments_total",
			Help:      "Total stock adjustments applied.",
		},
		[]string{"direction"}, // "up" | "down"
	)

	// HandoffLinks counts WhatsApp checkout links built for visitors.
	HandoffLinks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "atelier",
		Subsystem: "store",
		Name:      "handoff_links_total",
		Help:      "Total checkout handoff links generated.",
	})
)

// DefaultRegistry is the Prometheus registry used by the app.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		SalesRegistered,
		StockAdjustments,
		HandoffLinks,
	)
}

// responseWriter captures the status code for labelling.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with the built-in HTTP metrics.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			labels := []string{r.Method, r.URL.Path, strconv.Itoa(rw.status)}
			RequestTotal.WithLabelValues(labels...).Inc()
			RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the registry for Prometheus scraping.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}
