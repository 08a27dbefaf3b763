package aria

import (
	"net/http"

	"github.com/dmitrymomot/aria/internal"
	"github.com/dmitrymomot/aria/pkg/cookie"
	"github.com/dmitrymomot/aria/pkg/logger"
)

// Type aliases - public API
type (
	// App dispatches HTTP requests against its route tables. Immutable
	// after New; use Derive to build variants.
	App = internal.App

	// Router is the registration surface passed to Handler.Routes and
	// WithRoutes callbacks.
	Router = internal.Router

	// Context carries one request through filters, guards, and handlers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers, helpers, and
	// recovery handlers.
	HandlerFunc = internal.HandlerFunc

	// Filter runs for every request, before routing or after the handler.
	Filter = internal.Filter

	// Condition guards a single route; a rejected route is skipped, not
	// failed.
	Condition = internal.Condition

	// Middleware wraps the whole application as a plain http.Handler.
	Middleware = internal.Middleware

	// Ref names a helper registered with Router.Helper. Returning a Ref
	// from a handler delegates the response to that helper.
	Ref = internal.Ref

	// Matcher is a caller-supplied route matcher used instead of a path
	// pattern.
	Matcher = internal.Matcher

	// Option configures the application.
	Option = internal.Option

	// RouteOption attaches per-route behavior at registration time.
	RouteOption = internal.RouteOption

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// SessionOption configures the session cookie.
	SessionOption = internal.SessionOption

	// Environment selects environment-specific behavior.
	Environment = internal.Environment

	// Response is the buffered response under construction.
	Response = internal.Response

	// ResponseWriter wraps http.ResponseWriter with write tracking and
	// before-write hooks.
	ResponseWriter = internal.ResponseWriter

	// Params is the request parameter bag: query and form values merged
	// with the captures of the matched route.
	Params = internal.Params

	// Session is the request-scoped session store backed by an encrypted
	// cookie.
	Session = internal.Session

	// HTTPError carries a status code with a failure. The recovery
	// pipeline uses the code instead of the default 500.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// RecoveryError wraps a failure raised inside a recovery handler.
	// Always fatal.
	RecoveryError = internal.RecoveryError

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the session cookie manager.
	CookieOption = cookie.Option
)

// Environments.
const (
	EnvDevelopment = internal.EnvDevelopment
	EnvStaging     = internal.EnvStaging
	EnvProduction  = internal.EnvProduction
)

// Reserved parameter keys written by the dispatcher.
const (
	// ParamSplat collects wildcard captures, one value per * in the
	// pattern, in path order.
	ParamSplat = internal.ParamSplat

	// ParamCaptures collects positional captures of regexp and Matcher
	// routes, in group order.
	ParamCaptures = internal.ParamCaptures

	// ParamAgent collects the capture groups of a WithAgent guard.
	ParamAgent = internal.ParamAgent
)

// Failure kinds produced by the dispatch pipeline. Register recovery
// handlers against them with Router.Error, or return them from handlers
// to trigger the corresponding recovery path.
var (
	ErrNotFound              = internal.ErrNotFound
	ErrTypeConversion        = internal.ErrTypeConversion
	ErrInvalidPathSpec       = internal.ErrInvalidPathSpec
	ErrSessionsNotConfigured = internal.ErrSessionsNotConfigured
	ErrViewsNotConfigured    = internal.ErrViewsNotConfigured
)

// New creates an application with the given options. The App is
// immutable after creation.
//
// Example:
//
//	app := aria.New(
//	    aria.WithLogger("web"),
//	    aria.WithRoutes(func(r aria.Router) {
//	        r.Get("/", home)
//	        r.Get("/posts/:slug", showPost)
//	    }),
//	)
//
//	err := app.Run(":8080", aria.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Control signals

// Pass returns the control signal that skips the current route. Returned
// from a handler or a guard it moves dispatch to the next candidate
// route; returned from a before filter it only ends that filter.
func Pass() error { return internal.Pass() }

// Halt stops handler execution immediately and uses res as the handler
// result. res accepts every shape a handler may return:
//
//	return nil, aria.Halt(403)
//	return nil, aria.Halt([]any{429, "slow down"})
func Halt(res any) error { return internal.Halt(res) }

// HTTP errors

// NewHTTPError creates an HTTPError with the given status code and
// message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches a wrapped cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized creates a 401 HTTPError.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden creates a 403 HTTPError.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrConflict creates a 409 HTTPError.
func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

// ErrUnprocessable creates a 422 HTTPError.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable creates a 503 HTTPError.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// AsHTTPError extracts an HTTPError from err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is missing or of another type.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := aria.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns the named route/request parameter converted to T.
// Returns the zero value of T when the parameter is missing or does not
// convert.
//
// Example:
//
//	id := aria.Param[int](c, "id")
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns the named query parameter converted to T.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns the named query parameter converted to T, or
// defaultValue when the parameter is missing or does not convert.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// SessionValue retrieves a typed value from a session.
// Returns the zero value of T if the key is missing or of another type.
func SessionValue[T any](s *Session, key string) T {
	return internal.SessionValue[T](s, key)
}

// NewResponseWriter wraps w with write tracking and before-write hooks.
// Middleware can use it to observe the status and size of the response.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return internal.NewResponseWriter(w)
}

// Cookie options for WithSessionCookies.

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookiePath sets the cookie path.
func WithCookiePath(path string) CookieOption {
	return cookie.WithPath(path)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieHTTPOnly sets the HttpOnly flag.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return cookie.WithHTTPOnly(httpOnly)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}
