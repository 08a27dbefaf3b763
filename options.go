package aria

import (
	"io/fs"
	"log/slog"
	"regexp"
	"time"

	"github.com/dmitrymomot/aria/internal"
	"github.com/dmitrymomot/aria/pkg/health"
	"github.com/dmitrymomot/aria/pkg/view"
)

// App options

// WithEnvironment sets the application environment.
// Defaults to EnvDevelopment, where default error pages include the
// failure message.
func WithEnvironment(env Environment) Option {
	return internal.WithEnvironment(env)
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
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithRaiseErrors makes dispatch failures (other than route misses)
// panic out of the application instead of entering the recovery
// pipeline. Useful in tests, where a wrapped 500 hides the real failure.
func WithRaiseErrors() Option {
	return internal.WithRaiseErrors()
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided and runs before static
// files and dispatch.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
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
	return internal.WithHandlers(h...)
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
	return internal.WithRoutes(fn)
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
	return internal.WithSessions(secret, opts...)
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
	return internal.WithViews(fsys, opts...)
}

// WithStaticFiles serves files from fsys under the given URL prefix.
// Requests that miss fall through to routing, so routes and static
// files can share a prefix. Directory listings are disabled.
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
	return internal.WithStaticFiles(prefix, fsys, subDir)
}

// WithHealthChecks registers health check endpoints as regular routes.
// Liveness (/health/live) always returns OK while the process runs;
// readiness (/health/ready) runs all configured checks in parallel.
//
// Example:
//
//	aria.New(
//	    aria.WithHealthChecks(
//	        aria.WithReadinessCheck("upstream", pingUpstream),
//	    ),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Route options

// WithCondition attaches guard conditions to the route, evaluated in
// order after any conditions staged with Router.Condition.
func WithCondition(conds ...Condition) RouteOption {
	return internal.WithCondition(conds...)
}

// WithHost guards the route to requests for the given host. A leading
// "*." label matches any subdomain:
//
//	aria.WithHost("api.example.com")
//	aria.WithHost("*.example.com")
func WithHost(pattern string) RouteOption {
	return internal.WithHost(pattern)
}

// WithHostMatch guards the route with a host regexp.
func WithHostMatch(rx *regexp.Regexp) RouteOption {
	return internal.WithHostMatch(rx)
}

// WithAgent guards the route with a User-Agent regexp. On acceptance the
// expression's capture groups are recorded under the "agent" parameter,
// one value per group.
func WithAgent(rx *regexp.Regexp) RouteOption {
	return internal.WithAgent(rx)
}

// WithProvides guards the route to requests whose Accept header admits
// one of the given media types and sets Content-Type to the first match.
func WithProvides(types ...string) RouteOption {
	return internal.WithProvides(types...)
}

// Session options

// WithSessionName sets the session cookie name.
// Defaults to "aria_session".
func WithSessionName(name string) SessionOption {
	return internal.WithSessionName(name)
}

// WithSessionTTL sets how long the session cookie lives.
// Defaults to 30 days.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return internal.WithSessionTTL(ttl)
}

// WithSessionCookies forwards options to the session cookie manager,
// e.g. aria.WithCookieDomain or aria.WithCookieSecure.
func WithSessionCookies(opts ...CookieOption) SessionOption {
	return internal.WithSessionCookies(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}
