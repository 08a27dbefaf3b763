package internal

import (
	"fmt"
	"net/http"
	"strings"
)

// route is one compiled entry in a method's route table. Entries are
// matched in registration order; the first route whose pattern matches
// and whose conditions all accept handles the request.
type route struct {
	pattern    *pattern
	conditions []Condition
	handler    HandlerFunc
}

// kindHandler recovers failures matching a sentinel error, looked up
// with errors.Is so wrapped failures still find their handler.
type kindHandler struct {
	kind    error
	handler HandlerFunc
}

// Router is the registration surface passed to Handler.Routes and
// WithRoutes callbacks. Registration happens while the application is
// being built; routes cannot be added to a running application.
//
// Route patterns accept a string pattern (":name" segments and "*"
// splats), a *regexp.Regexp, or a Matcher. Invalid patterns panic, as
// registration is a configuration-time activity.
type Router interface {
	// Get registers a GET route and a matching HEAD route with the same
	// guards, so HEAD requests reuse the GET handler with the body
	// discarded on the wire.
	Get(pattern any, h HandlerFunc, opts ...RouteOption)
	Post(pattern any, h HandlerFunc, opts ...RouteOption)
	Put(pattern any, h HandlerFunc, opts ...RouteOption)
	Patch(pattern any, h HandlerFunc, opts ...RouteOption)
	Delete(pattern any, h HandlerFunc, opts ...RouteOption)
	Options(pattern any, h HandlerFunc, opts ...RouteOption)
	Head(pattern any, h HandlerFunc, opts ...RouteOption)

	// Handle registers a route for an arbitrary method.
	Handle(method string, pattern any, h HandlerFunc, opts ...RouteOption)

	// Before adds filters that run before routing on every request.
	Before(filters ...Filter)

	// After adds filters that run after the handler and the recovery
	// pipeline, whether or not a route matched.
	After(filters ...Filter)

	// Condition stages guards consumed by the next route registration
	// only. Staged guards run before any guards attached with route
	// options.
	Condition(conds ...Condition)

	// Helper registers a named handler that routes can delegate to by
	// returning Ref(name). Re-registering a name replaces the helper.
	Helper(name string, h HandlerFunc)

	// NotFound replaces the handler invoked when no route matches. The
	// 404 status and default body are already in place when it runs.
	NotFound(h HandlerFunc)

	// Error registers a recovery handler for failures matching kind.
	// The most recently registered matching handler wins.
	Error(kind error, h HandlerFunc)

	// ErrorStatus registers a recovery handler keyed on the response
	// status. It runs whenever a request finishes with exactly that
	// error status, whether set by a handler or by the recovery
	// pipeline.
	ErrorStatus(code int, h HandlerFunc)

	// ErrorAny registers the fallback recovery handler for failures no
	// kind handler matched.
	ErrorAny(h HandlerFunc)
}

// builder implements Router against an application's route tables.
type builder struct {
	app *App

	// pending holds guards staged by Condition, consumed by the next
	// registration.
	pending []Condition
}

var _ Router = (*builder)(nil)

func (b *builder) Get(pattern any, h HandlerFunc, opts ...RouteOption) {
	staged := append([]Condition(nil), b.pending...)
	b.Handle(http.MethodGet, pattern, h, opts...)
	b.pending = staged
	b.Handle(http.MethodHead, pattern, h, opts...)
}

func (b *builder) Post(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodPost, pattern, h, opts...)
}

func (b *builder) Put(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodPut, pattern, h, opts...)
}

func (b *builder) Patch(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodPatch, pattern, h, opts...)
}

func (b *builder) Delete(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodDelete, pattern, h, opts...)
}

func (b *builder) Options(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodOptions, pattern, h, opts...)
}

func (b *builder) Head(pattern any, h HandlerFunc, opts ...RouteOption) {
	b.Handle(http.MethodHead, pattern, h, opts...)
}

func (b *builder) Handle(method string, spec any, h HandlerFunc, opts ...RouteOption) {
	if h == nil {
		panic(fmt.Sprintf("aria: nil handler for route %s %v", method, spec))
	}
	pat, err := compilePattern(spec)
	if err != nil {
		panic(fmt.Sprintf("aria: route %s %v: %v", method, spec, err))
	}

	rt := &route{pattern: pat, handler: h}
	rt.conditions = append(rt.conditions, b.pending...)
	b.pending = nil
	for _, opt := range opts {
		if opt != nil {
			opt(rt)
		}
	}

	method = strings.ToUpper(method)
	b.app.routes[method] = append(b.app.routes[method], rt)
}

func (b *builder) Before(filters ...Filter) {
	for _, f := range filters {
		if f != nil {
			b.app.beforeFilters = append(b.app.beforeFilters, f)
		}
	}
}

func (b *builder) After(filters ...Filter) {
	for _, f := range filters {
		if f != nil {
			b.app.afterFilters = append(b.app.afterFilters, f)
		}
	}
}

func (b *builder) Condition(conds ...Condition) {
	for _, cond := range conds {
		if cond != nil {
			b.pending = append(b.pending, cond)
		}
	}
}

func (b *builder) Helper(name string, h HandlerFunc) {
	if name == "" || h == nil {
		return
	}
	b.app.helpers[name] = h
}

func (b *builder) NotFound(h HandlerFunc) {
	if h != nil {
		b.app.notFound = h
	}
}

func (b *builder) Error(kind error, h HandlerFunc) {
	if kind == nil || h == nil {
		return
	}
	b.app.errorKinds = append(b.app.errorKinds, kindHandler{kind: kind, handler: h})
}

func (b *builder) ErrorStatus(code int, h HandlerFunc) {
	if code < 400 || code > 599 || h == nil {
		return
	}
	b.app.errorStatuses[code] = h
}

func (b *builder) ErrorAny(h HandlerFunc) {
	if h != nil {
		b.app.errorAny = h
	}
}
