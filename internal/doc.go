// Package internal provides the core types and implementation for the Aria framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/aria"
// instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Holds the route tables, filters, and recovery handlers; dispatches requests
//   - Context: Provides request/response access, params, sessions, and helper methods
//   - Router: Interface handlers use to declare routes, filters, guards, and helpers
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for route handlers; the returned value becomes the response
//   - Filter: Runs before routing or after the handler for every request
//   - Condition: Guards a single route; rejected routes are skipped, not failed
//   - Middleware: Wraps the whole application as a plain http.Handler
//
// # Dispatch Pipeline
//
// Each request flows through global middleware, static file mounts, and
// then the dispatch pipeline: before filters, the method's route table in
// registration order, the recovery pipeline, and after filters. The
// response is buffered for the whole pipeline and written to the wire
// exactly once at the end, so recovery handlers can replace everything a
// failed handler produced.
//
// # Handler Results
//
// Handlers return (any, error). The value is normalized into the buffered
// response by shape: strings, byte slices, and string slices become the
// body; an int between 100 and 599 becomes the status; an []any tuple
// carries status, optional headers, and body together; an iter.Seq[string]
// or io.Reader streams the body at write time; a Ref delegates to a named
// helper. Anything else fails with ErrTypeConversion.
//
//	r.Get("/greet/:name", func(c aria.Context) (any, error) {
//	    return "Hello, " + c.Param("name"), nil
//	})
//
//	r.Get("/teapot", func(c aria.Context) (any, error) {
//	    return []any{418, map[string]string{"X-Pot": "short"}, "I'm a teapot"}, nil
//	})
//
// # Control Signals
//
// Two sentinel errors steer dispatch without failing it. Pass() abandons
// the current route and resumes the scan with the next candidate. Halt(res)
// stops handler execution immediately and uses res as the handler result:
//
//	r.Get("/admin", func(c aria.Context) (any, error) {
//	    if !authorized(c) {
//	        return nil, aria.Halt(403)
//	    }
//	    return adminPage(c)
//	})
//
// # Recovery
//
// A failed request is recovered in layers. A route miss produces the
// canonical 404 response, refined by the NotFound handler when one is
// registered. Other failures resolve their status (HTTPError codes win
// over the default 500) and run the matching kind handler, or the ErrorAny
// fallback. Finally, handlers registered with ErrorStatus run whenever the
// response ends up with their exact status code, however it got there. A
// failure inside a recovery handler is fatal and renders a bare 500.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any
// function that expects a standard library context:
//
//	func (h *Pages) show(c aria.Context) (any, error) {
//	    post, err := h.repo.GetPost(c, c.Param("slug"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return c.JSON(200, post)
//	}
//
// # Application Structure
//
// Create an application with New() and configure it using options. The
// application is immutable after creation; Derive() builds a new one that
// inherits a copy of every table:
//
//	base := internal.New(
//	    internal.WithRoutes(commonRoutes),
//	    internal.WithSessions(secret),
//	)
//	admin := base.Derive(
//	    internal.WithRoutes(adminRoutes),
//	)
//
// # Server Runtime
//
// Start a single application with app.Run(), or compose several by host
// pattern with the package-level Run():
//
//	err := internal.Run(
//	    internal.Host("api.example.com", apiApp),
//	    internal.Host("*.example.com", tenantApp),
//	    internal.Address(":8080"),
//	)
//
// # Design Principles
//
//   - No magic: explicit code, no reflection beyond result normalization
//   - Constructor injection: handlers receive dependencies, not service lookups
//   - Buffered responses: nothing reaches the wire until recovery has run
//   - Framework, not boilerplate: provides routing and lifecycle, not business logic
//
// See the aria package documentation for the public API and usage examples.
package internal
