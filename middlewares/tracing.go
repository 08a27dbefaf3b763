package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/aria/internal"
	"github.com/dmitrymomot/aria/pkg/logger"
)

// tracerName identifies spans created by the tracing middleware.
const tracerName = "github.com/dmitrymomot/aria/middlewares"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// TracerProvider supplies the tracer. Default: the global provider
	// registered with otel.SetTracerProvider.
	TracerProvider trace.TracerProvider

	// Propagator extracts incoming trace context from request headers.
	// Default: the global propagator.
	Propagator propagation.TextMapPropagator

	// SkipPaths lists exact paths that are never traced (health checks,
	// metrics endpoints).
	SkipPaths []string
}

// TracingOption configures TracingConfig.
type TracingOption func(*TracingConfig)

// WithTracerProvider sets a custom tracer provider instead of the
// global one.
func WithTracerProvider(provider trace.TracerProvider) TracingOption {
	return func(cfg *TracingConfig) {
		cfg.TracerProvider = provider
	}
}

// WithTracingPropagator sets the propagator used to pick up incoming
// trace context.
func WithTracingPropagator(p propagation.TextMapPropagator) TracingOption {
	return func(cfg *TracingConfig) {
		cfg.Propagator = p
	}
}

// WithTracingSkipPaths sets paths excluded from tracing.
func WithTracingSkipPaths(paths ...string) TracingOption {
	return func(cfg *TracingConfig) {
		cfg.SkipPaths = paths
	}
}

// Tracing returns middleware that opens an OpenTelemetry server span per
// request. Incoming trace context is extracted from the request headers,
// the span context flows to handlers through the request context, and
// the response status is recorded when the request finishes. Statuses of
// 500 and above mark the span as failed.
//
// The tracer comes from the global provider unless WithTracerProvider
// overrides it. Configure the provider in main() before building the
// application:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TracingOption) internal.Middleware {
	cfg := &TracingConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.Propagator == nil {
		cfg.Propagator = otel.GetTextMapPropagator()
	}

	tracer := cfg.TracerProvider.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := cfg.Propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.route", r.URL.Path),
					attribute.String("http.host", r.Host),
					attribute.String("http.user_agent", r.UserAgent()),
				),
			)
			defer span.End()

			rw, ok := w.(*internal.ResponseWriter)
			if !ok {
				rw = internal.NewResponseWriter(w)
			}

			next.ServeHTTP(rw, r.WithContext(ctx))

			status := rw.Status()
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// TraceIDExtractor returns a ContextExtractor for use with WithLogger.
// Adds "trace_id" to log entries made inside an active span.
func TraceIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			return slog.String("trace_id", sc.TraceID().String()), true
		}
		return slog.Attr{}, false
	}
}
