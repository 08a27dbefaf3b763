package aria

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/aria/internal"
)

// Run starts a multi-host HTTP server and blocks until shutdown.
// Use this for composing multiple Apps under different host patterns;
// for the common single-host case use App.Run.
//
// Example:
//
//	api := aria.New(
//	    aria.WithHandlers(handlers.NewAPIHandler()),
//	)
//
//	website := aria.New(
//	    aria.WithHandlers(handlers.NewLandingHandler()),
//	)
//
//	err := aria.Run(
//	    aria.Host("api.acme.com", api),
//	    aria.Host("*.acme.com", website),
//	    aria.Address(":8080"),
//	    aria.Logger(slog),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server runtime logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server starts
// accepting traffic. Hooks run in registration order; an error aborts
// startup.
//
// Example:
//
//	aria.StartupHook(cache.Warm(client))
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	aria.ShutdownHook(tracer.Shutdown)
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Host maps a host pattern to an App.
// Patterns: "api.example.com" (exact) or "*.example.com" (wildcard)
//
// Example:
//
//	aria.Run(
//	    aria.Host("api.acme.com", apiApp),
//	    aria.Host("*.acme.com", tenantApp),
//	)
func Host(pattern string, app *App) RunOption {
	return internal.Host(pattern, app)
}

// Fallback sets the default App for requests that don't match any host.
// If no hosts are configured, the fallback becomes the main handler.
//
// Example:
//
//	aria.Run(
//	    aria.Host("api.acme.com", apiApp),
//	    aria.Fallback(landingApp),
//	)
func Fallback(app *App) RunOption {
	return internal.Fallback(app)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
