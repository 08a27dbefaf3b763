package internal

import "net/http"

// Handler declares routes on a router.
//
// Example:
//
//	type Pages struct {
//	    repo *repository.Queries
//	}
//
//	func (h *Pages) Routes(r aria.Router) {
//	    r.Get("/", h.home)
//	    r.Get("/posts/:slug", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers, helpers, and recovery
// handlers. The returned value is normalized into the response (see
// invoke.go); a non-nil error enters the recovery pipeline unless it is a
// pass or halt signal.
type HandlerFunc func(c Context) (any, error)

// Filter runs for every request, before routing (Router.Before) or after
// the route handler (Router.After). Filters mutate the in-flight response
// through the Context; their effects persist regardless of which route
// eventually matches.
type Filter func(c Context) error

// Condition guards a single route. Returning false rejects the route and
// dispatch continues with the next candidate. Returning an error aborts
// dispatch and enters the recovery pipeline. Parameter mutations made by
// a condition are kept only if the whole route is accepted.
type Condition func(c Context) (bool, error)

// Middleware wraps the application's HTTP handler to add cross-cutting
// concerns. Middleware runs outside the dispatch pipeline, so it sees the
// raw http.ResponseWriter rather than the buffered response.
//
// Example:
//
//	func NoCache(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        w.Header().Set("Cache-Control", "no-store")
//	        next.ServeHTTP(w, r)
//	    })
//	}
type Middleware func(next http.Handler) http.Handler

// Ref names a helper registered with Router.Helper. A handler may return
// a Ref to delegate the response to that helper; the dispatcher resolves
// it and normalizes the helper's result in its place.
type Ref string

// Matcher is a caller-supplied route matcher used instead of a path
// pattern. Captures, if any, are exposed to the handler under the
// reserved "captures" parameter; no named parameters are derived.
type Matcher interface {
	// MatchPath reports whether path matches, along with any captured
	// substrings in order.
	MatchPath(path string) (captures []string, ok bool)
}

// routesFunc adapts a plain function to the Handler interface.
type routesFunc func(Router)

func (f routesFunc) Routes(r Router) { f(r) }
