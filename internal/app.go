package internal

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/aria/pkg/logger"
	"github.com/dmitrymomot/aria/pkg/view"
)

// Environment selects environment-specific behavior, currently how much
// failure detail the default error page exposes.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// App dispatches HTTP requests against its route tables. It manages
// filters, guards, recovery handlers, sessions, and static files.
// App is immutable after creation - all configuration is done via New()
// or Derive().
type App struct {
	env         Environment
	logger      *slog.Logger
	raiseErrors bool

	routes        map[string][]*route
	beforeFilters []Filter
	afterFilters  []Filter
	helpers       map[string]HandlerFunc

	notFound      HandlerFunc
	errorKinds    []kindHandler
	errorStatuses map[int]HandlerFunc
	errorAny      HandlerFunc

	middlewares []Middleware
	statics     []*staticRoute
	sessions    *sessionStore
	views       *view.Registry

	// registrars are Handler values staged by options, consumed by build.
	registrars []Handler

	// handler is the composed chain: middlewares, static files, dispatch.
	handler http.Handler
}

// New creates an application with the given options. The App is
// immutable after creation.
//
// Example:
//
//	app := aria.New(
//	    aria.WithLogger(log),
//	    aria.WithRoutes(func(r aria.Router) {
//	        r.Get("/", home)
//	        r.Get("/posts/:slug", showPost)
//	    }),
//	)
func New(opts ...Option) *App {
	a := &App{
		env:           EnvDevelopment,
		logger:        logger.NewNope(),
		routes:        make(map[string][]*route),
		helpers:       make(map[string]HandlerFunc),
		errorStatuses: make(map[int]HandlerFunc),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.build()
	return a
}

// Derive creates a new application that starts from a copy of this one:
// routes, filters, guards staged inside them, helpers, recovery handlers,
// middleware, and configuration all carry over. The copy then applies its
// own options on top. Registrations on the derived application never
// touch the parent.
//
// Example:
//
//	base := aria.New(
//	    aria.WithRoutes(commonRoutes),
//	)
//	admin := base.Derive(
//	    aria.WithRoutes(adminRoutes),
//	)
func (a *App) Derive(opts ...Option) *App {
	child := a.clone()
	for _, opt := range opts {
		if opt != nil {
			opt(child)
		}
	}
	child.build()
	return child
}

// clone copies the application's tables deeply enough that registration
// on the copy cannot leak into the original. Routes themselves are
// shared: they are immutable once registered.
func (a *App) clone() *App {
	child := &App{
		env:         a.env,
		logger:      a.logger,
		raiseErrors: a.raiseErrors,

		routes:        make(map[string][]*route, len(a.routes)),
		beforeFilters: slices.Clone(a.beforeFilters),
		afterFilters:  slices.Clone(a.afterFilters),
		helpers:       maps.Clone(a.helpers),

		notFound:      a.notFound,
		errorKinds:    slices.Clone(a.errorKinds),
		errorStatuses: maps.Clone(a.errorStatuses),
		errorAny:      a.errorAny,

		middlewares: slices.Clone(a.middlewares),
		statics:     slices.Clone(a.statics),
		sessions:    a.sessions,
		views:       a.views,
	}
	for method, routes := range a.routes {
		child.routes[method] = slices.Clone(routes)
	}
	return child
}

// build runs staged registrars against the route tables and composes the
// handler chain. Called once per New or Derive.
func (a *App) build() {
	b := &builder{app: a}
	for _, h := range a.registrars {
		h.Routes(b)
	}
	a.registrars = nil

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fatal dispatch errors are already logged and answered with a
		// bare 500; there is nowhere further to report them here.
		_ = a.Dispatch(w, r)
	})
	if len(a.statics) > 0 {
		h = a.serveStatic(h)
	}
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		h = a.middlewares[i](h)
	}
	a.handler = h
}

// ServeHTTP implements http.Handler: global middleware runs first, then
// static files, then the dispatch pipeline.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Dispatch runs the routing pipeline directly, bypassing global
// middleware and static files. It is the innermost layer of ServeHTTP
// and useful for mounting an application inside a foreign router. The
// returned error reports a recovery failure, already logged and
// answered with a bare 500, or a response write failure; embedding
// hosts may surface it, ServeHTTP drops it.
func (a *App) Dispatch(w http.ResponseWriter, r *http.Request) error {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	c := newContext(rw, r, a)
	fatal := a.perform(c)

	if rw.Written() {
		// Middleware already wrote a response past the buffer.
		return fatal
	}
	if err := c.res.seal(rw, r.Method == http.MethodHead); err != nil {
		c.LogError("response write failed", "error", err)
		if fatal == nil {
			fatal = &RecoveryError{Recovery: err, Original: c.failure}
		}
	}
	return fatal
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Environment returns the application environment.
func (a *App) Environment() Environment { return a.env }

// Run starts an HTTP server for this application and blocks until
// shutdown. This is a convenience method for the common single-host
// case; use the package-level Run to compose applications by host.
//
// Example:
//
//	err := app.Run(":8080", aria.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
