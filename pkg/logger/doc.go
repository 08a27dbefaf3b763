// Package logger provides structured logging with context extraction and
// optional Sentry forwarding.
//
// The package extends log/slog with automatic context-based attribute
// injection: extractors pull request-scoped values (request IDs, session
// IDs) out of the context on every log call, so handlers and middleware
// log once and the plumbing enriches the entry.
//
// # Basic Usage
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value(ctxKey{}).(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestIDExtractor)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// # Sentry Integration
//
// NewWithSentry fans entries out to stdout and Sentry. Errors create
// Sentry issues; warnings are stored as logs for context. With an empty
// DSN the logger degrades to stdout only, so the same code path works in
// development:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	}, requestIDExtractor)
//
// # Handler Decoration
//
// NewLogHandlerDecorator wraps any slog.Handler to add extraction, so
// custom handlers keep working:
//
//	decorated := logger.NewLogHandlerDecorator(customHandler, extractors...)
//	log := slog.New(decorated)
package logger
