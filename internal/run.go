package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/aria/pkg/hostrouter"
)

// Run starts a multi-host HTTP server and blocks until shutdown.
// Use this for composing multiple Apps under different host patterns.
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
	cfg := buildRunConfig(opts...)

	var handler http.Handler

	switch {
	case len(cfg.hosts) > 0:
		routes := make(hostrouter.Routes, len(cfg.hosts))
		for pattern, app := range cfg.hosts {
			routes[pattern] = app
		}
		var fallback http.Handler = http.NotFoundHandler()
		if cfg.fallback != nil {
			fallback = cfg.fallback
		}
		handler = hostrouter.New(routes, fallback)
	case cfg.fallback != nil:
		handler = cfg.fallback
	default:
		return errors.New("aria.Run: no hosts or fallback configured")
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
