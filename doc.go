// Package aria is a small, Sinatra-flavored web framework for Go:
// declarative routes with named parameters and splats, before/after
// filters, per-route guard conditions, flexible handler return values,
// and a layered recovery pipeline.
//
// # Quick Start
//
// Create an application with aria.New(), declare routes, and call Run()
// to start the HTTP server:
//
//	app := aria.New(
//	    aria.WithLogger("web"),
//	    aria.WithRoutes(func(r aria.Router) {
//	        r.Get("/", func(c aria.Context) (any, error) {
//	            return "Welcome!", nil
//	        })
//	        r.Get("/hello/:name", func(c aria.Context) (any, error) {
//	            return "Hi, " + c.Param("name"), nil
//	        })
//	    }),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
// Route patterns are strings with ":name" parameter segments and "*"
// splats, a *regexp.Regexp, or a custom Matcher. Routes are tried in
// declaration order; the first route whose pattern matches and whose
// guards all accept handles the request:
//
//	r.Get("/posts/:slug", showPost)
//	r.Get("/files/*", sendAttachment)
//	r.Get("/feed", jsonFeed, aria.WithProvides("application/json"))
//	r.Get("/", mobileHome, aria.WithAgent(regexp.MustCompile(`Mobile`)))
//	r.Get("/", desktopHome)
//
// # Handler Results
//
// Handlers return (any, error); the value is normalized into the
// response by shape. Strings become the body, ints between 100 and 599
// become the status, []any tuples carry (status, headers, body) or
// (status, body), io.Reader and iter.Seq[string] stream, and a Ref
// delegates to a named helper:
//
//	r.Get("/created", func(c aria.Context) (any, error) {
//	    return []any{201, map[string]string{"X-Created": "1"}, "ok"}, nil
//	})
//
// # Filters, Guards, and Control Signals
//
// Before filters run for every request ahead of routing; after filters
// run once routing finished, even when it failed. Guards reject a single
// route without failing the request; parameter writes made by a guard are
// kept only when the whole route is accepted. Handlers use Pass() to
// fall through to the next matching route and Halt(res) to stop early
// with a result.
//
// # Recovery
//
// A route miss renders the canonical 404, refined by a NotFound handler
// when registered. Other failures pick their status (HTTPError codes win
// over 500), then the matching Error kind handler or the ErrorAny
// fallback runs, and finally any ErrorStatus handler for the response's
// exact status. Failures inside recovery handlers are fatal.
//
// # Larger Applications
//
// Group routes into types implementing the Handler interface, register
// them with WithHandlers, and derive per-audience variants:
//
//	base := aria.New(
//	    aria.WithHandlers(handlers.NewPages(repo)),
//	    aria.WithSessions(os.Getenv("SESSION_SECRET")),
//	)
//	admin := base.Derive(
//	    aria.WithHandlers(handlers.NewAdmin(repo)),
//	)
//
//	err := aria.Run(
//	    aria.Host("admin.example.com", admin),
//	    aria.Fallback(base),
//	)
//
// Subpackages provide supporting pieces: middlewares for http.Handler
// middleware (logging, request IDs, CORS, metrics, tracing), pkg/view
// for template rendering, pkg/cookie for signed and encrypted cookies,
// and pkg/config for YAML configuration with environment overrides.
package aria
