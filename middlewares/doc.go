// Package middlewares provides HTTP middleware for Aria applications.
//
// Every middleware here is a plain func(http.Handler) http.Handler, so
// it also works with any other net/http router. Middleware installed via
// WithMiddleware runs outside the dispatch pipeline: before routing,
// filters, and guards.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and
// debugging. It checks incoming headers for existing IDs or generates
// new ones using ULID.
//
//	app := aria.New(
//	    aria.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in
// all log entries:
//
//	app := aria.New(
//	    aria.WithLogger("api", middlewares.RequestIDExtractor()),
//	    aria.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Logger
//
// Logger writes one structured log line per request with method, path,
// status, size, and duration. Place it inside RequestID so the request
// ID decorates the entry.
//
//	app := aria.New(
//	    aria.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logger(log, middlewares.WithLoggerSkipPaths("/health")),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics that escape the layers below it and sends a
// plain 500 if nothing was written yet. The dispatch pipeline already
// recovers handler panics; Recover is the outer net for panics from
// other middleware and for failures propagated by WithRaiseErrors.
//
//	app := aria.New(
//	    aria.WithRaiseErrors(),
//	    aria.WithMiddleware(
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    ),
//	)
//
// # CORS
//
// CORS handles Cross-Origin Resource Sharing headers. It answers
// preflight (OPTIONS) requests before they reach the route tables and
// adds CORS headers to all responses.
//
//	app := aria.New(
//	    aria.WithMiddleware(
//	        middlewares.CORS(
//	            middlewares.WithAllowOrigins("https://app.example.com"),
//	            middlewares.WithAllowCredentials(),
//	        ),
//	    ),
//	)
//
// # Metrics
//
// Metrics records Prometheus counters and histograms per request,
// labeled by method and status code.
//
//	app := aria.New(
//	    aria.WithMiddleware(
//	        middlewares.Metrics(middlewares.WithMetricsNamespace("myapp")),
//	    ),
//	)
//
// # Tracing
//
// Tracing opens an OpenTelemetry server span per request and picks up
// incoming trace context from the request headers. Pair it with
// TraceIDExtractor() to stamp log entries with the trace ID.
//
//	app := aria.New(
//	    aria.WithLogger("api", middlewares.TraceIDExtractor()),
//	    aria.WithMiddleware(
//	        middlewares.Tracing(middlewares.WithTracingSkipPaths("/health")),
//	    ),
//	)
//
// # Recommended Middleware Order
//
// Apply middlewares in this order for best results:
//
//	aria.WithMiddleware(
//	    middlewares.Recover(),    // outermost: catch everything below
//	    middlewares.CORS(),       // answer preflight before other work
//	    middlewares.RequestID(),  // assign ID for all subsequent logging
//	    middlewares.Tracing(),    // open the span, inherit the request ID
//	    middlewares.Metrics(),    // record after inner layers finish
//	    middlewares.Logger(log),  // innermost: sees request ID and span
//	)
package middlewares
