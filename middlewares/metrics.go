package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/aria/internal"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "aria").
	Namespace string

	// Subsystem is the metrics subsystem (default: "http").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// SkipPaths lists exact paths that are not recorded (the metrics
	// endpoint itself, health checks).
	SkipPaths []string
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Namespace = namespace
	}
}

// WithMetricsSubsystem sets the metrics subsystem.
func WithMetricsSubsystem(subsystem string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Subsystem = subsystem
	}
}

// WithMetricsConstLabels sets constant labels for all metrics.
func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.ConstLabels = labels
	}
}

// WithMetricsBuckets sets the duration histogram buckets.
func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Buckets = buckets
	}
}

// WithMetricsRegistry sets the Prometheus registry.
func WithMetricsRegistry(registry prometheus.Registerer) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Registry = registry
	}
}

// WithMetricsSkipPaths sets paths excluded from metrics collection.
func WithMetricsSkipPaths(paths ...string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.SkipPaths = paths
	}
}

// Metrics returns middleware that records Prometheus metrics for every
// request:
//
//   - aria_http_requests_total: counter of requests by method and status
//   - aria_http_request_duration_seconds: histogram of request duration by method
//   - aria_http_requests_in_flight: gauge of requests currently being served
//   - aria_http_response_size_bytes: histogram of response body sizes
//
// Labels carry the method and status code, never the raw path, so
// cardinality stays bounded regardless of traffic.
//
// The collectors register against the configured registry when the
// middleware is built. Build it once and share the handler; a second
// Metrics() against the same registry panics on duplicate registration.
//
// Example:
//
//	app := aria.New(
//	    aria.WithMiddleware(middlewares.Metrics(
//	        middlewares.WithMetricsNamespace("myapp"),
//	        middlewares.WithMetricsSkipPaths("/metrics", "/health"),
//	    )),
//	)
//
//	// Expose the scrape endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Metrics(opts ...MetricsOption) internal.Middleware {
	cfg := &MetricsConfig{
		Namespace: "aria",
		Subsystem: "http",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	factory := promauto.With(cfg.Registry)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "requests_total",
		Help:        "Total number of HTTP requests processed",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "status"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "request_duration_seconds",
		Help:        "Request processing duration in seconds",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"method"})

	inFlight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "requests_in_flight",
		Help:        "Number of requests currently being served",
		ConstLabels: cfg.ConstLabels,
	})

	responseSize := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "response_size_bytes",
		Help:        "Response body size in bytes",
		ConstLabels: cfg.ConstLabels,
		Buckets:     []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			rw, ok := w.(*internal.ResponseWriter)
			if !ok {
				rw = internal.NewResponseWriter(w)
			}

			inFlight.Inc()
			start := time.Now()

			next.ServeHTTP(rw, r)

			inFlight.Dec()
			duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
			requests.WithLabelValues(r.Method, strconv.Itoa(rw.Status())).Inc()
			responseSize.Observe(float64(rw.Size()))
		})
	}
}
