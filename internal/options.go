package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/aria/pkg/cookie"
	"github.com/dmitrymomot/aria/pkg/health"
	"github.com/dmitrymomot/aria/pkg/logger"
	"github.com/dmitrymomot/aria/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithEnvironment sets the application environment.
// Defaults to EnvDevelopment, where default error pages include the
// failure message.
func WithEnvironment(env Environment) Option {
	return func(a *App) {
		if env != "" {
			a.env = env
		}
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	aria.New(
//	    aria.WithLogger("web", requestIDExtractor),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRaiseErrors makes dispatch failures (other than route misses)
// panic out of the application instead of entering the recovery
// pipeline. Useful in tests, where a wrapped 500 hides the real
// failure; pair with an outer recovery middleware in production.
func WithRaiseErrors() Option {
	return func(a *App) {
		a.raiseErrors = true
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided and runs before static
// files and dispatch.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		for _, m := range mw {
			if m != nil {
				a.middlewares = append(a.middlewares, m)
			}
		}
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
//
// Example:
//
//	aria.New(
//	    aria.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		for _, handler := range h {
			if handler != nil {
				a.registrars = append(a.registrars, handler)
			}
		}
	}
}

// WithRoutes registers routes with a plain function, for applications
// small enough not to warrant Handler types.
//
// Example:
//
//	aria.New(
//	    aria.WithRoutes(func(r aria.Router) {
//	        r.Get("/", home)
//	    }),
//	)
func WithRoutes(fn func(Router)) Option {
	return func(a *App) {
		if fn != nil {
			a.registrars = append(a.registrars, routesFunc(fn))
		}
	}
}

// sessionConfig holds session cookie configuration.
type sessionConfig struct {
	name       string
	ttl        time.Duration
	cookieOpts []cookie.Option
}

// SessionOption configures the session cookie.
type SessionOption func(*sessionConfig)

// WithSessionName sets the session cookie name.
// Defaults to "aria_session".
func WithSessionName(name string) SessionOption {
	return func(c *sessionConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithSessionTTL sets how long the session cookie lives.
// Defaults to 30 days.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(c *sessionConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSessionCookies forwards options to the session cookie manager,
// e.g. cookie.WithDomain or cookie.WithSecure.
func WithSessionCookies(opts ...cookie.Option) SessionOption {
	return func(c *sessionConfig) {
		c.cookieOpts = append(c.cookieOpts, opts...)
	}
}

// WithSessions enables encrypted cookie sessions. The secret encrypts
// and authenticates the cookie payload; sessions are loaded lazily on
// first Context.Session call and flushed automatically before the
// response is written.
//
// Example:
//
//	aria.New(
//	    aria.WithSessions(os.Getenv("SESSION_SECRET"),
//	        aria.WithSessionName("__sess"),
//	        aria.WithSessionTTL(7*24*time.Hour),
//	    ),
//	)
func WithSessions(secret string, opts ...SessionOption) Option {
	return func(a *App) {
		cfg := &sessionConfig{
			name: defaultSessionName,
			ttl:  defaultSessionTTL,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		cookieOpts := append([]cookie.Option{cookie.WithSecret(secret)}, cfg.cookieOpts...)
		a.sessions = &sessionStore{
			manager: cookie.New(cookieOpts...),
			name:    cfg.name,
			ttl:     cfg.ttl,
		}
	}
}

// WithViews configures the template registry backing Context.View.
// Templates are loaded from fsys and rendered by extension: .html via
// html/template, .md via markdown.
//
// Example:
//
//	//go:embed views
//	var views embed.FS
//
//	aria.New(
//	    aria.WithViews(views, view.WithSubDir("views")),
//	)
func WithViews(fsys fs.FS, opts ...view.Option) Option {
	return func(a *App) {
		reg, err := view.New(fsys, opts...)
		if err != nil {
			panic(fmt.Sprintf("aria: views: %v", err))
		}
		a.views = reg
	}
}

// WithStaticFiles serves files from fsys under the given URL prefix.
// Requests that miss fall through to routing, so routes and static
// files can share a prefix. Directory listings are disabled; files are
// served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	aria.New(
//	    aria.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(prefix string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(fmt.Sprintf("aria: static files: %v", err))
		}
		a.statics = append(a.statics, newStaticRoute(prefix, sub))
	}
}

// WithHealthChecks registers health check endpoints as regular routes.
// Liveness (/health/live) always returns OK while the process runs;
// readiness (/health/ready) runs all configured checks in parallel.
//
// Example:
//
//	aria.New(
//	    aria.WithHealthChecks(
//	        aria.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.registrars = append(a.registrars, routesFunc(func(r Router) {
			r.Get(cfg.livenessPath, livenessHandler())
			r.Get(cfg.readinessPath, readinessHandler(a, cfg.checks))
		}))
	}
}
