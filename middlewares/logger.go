package middlewares

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/aria/internal"
)

// LoggerConfig configures the request logging middleware.
type LoggerConfig struct {
	// SkipPaths lists exact paths that are never logged (health checks,
	// metrics endpoints).
	SkipPaths []string
}

// LoggerOption configures LoggerConfig.
type LoggerOption func(*LoggerConfig)

// WithLoggerSkipPaths sets paths excluded from request logging.
func WithLoggerSkipPaths(paths ...string) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.SkipPaths = paths
	}
}

// Logger returns middleware that writes one structured log line per
// request: method, path, status, bytes written, duration, and remote
// address. The level follows the status class: 5xx logs at error, 4xx
// at warn, everything else at info.
//
// The entry is logged against the request context, so extractors
// installed with WithLogger (request IDs, trace IDs) decorate it when
// this middleware runs inside RequestID or Tracing.
func Logger(log *slog.Logger, opts ...LoggerOption) internal.Middleware {
	cfg := &LoggerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if log == nil {
		log = slog.Default()
	}

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

			start := time.Now()
			next.ServeHTTP(rw, r)

			level := slog.LevelInfo
			switch {
			case rw.Status() >= 500:
				level = slog.LevelError
			case rw.Status() >= 400:
				level = slog.LevelWarn
			}

			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote", r.RemoteAddr),
			)
		})
	}
}
