package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/aria/pkg/hostrouter"
)

// Context carries one request through filters, guards, and handlers. It
// embeds context.Context, so it can be passed directly to anything that
// expects a standard library context.
//
// Exactly one Context exists per request; it is never shared across
// requests and is not safe for concurrent use.
type Context interface {
	context.Context

	// Request returns the incoming request.
	Request() *http.Request

	// Response returns the buffered response under construction. Nothing
	// reaches the wire until dispatch completes, so recovery handlers can
	// still replace status, headers, and body.
	Response() *Response

	// Params returns the request parameters: query and form values merged
	// with the captures of the matched route.
	Params() *Params

	// Param returns the first parameter value for name, or "".
	Param(name string) string

	// Query returns the first URL query value for name, bypassing form
	// values and route captures.
	Query(name string) string

	// Path returns the escaped request path, the form routes match
	// against.
	Path() string

	// Host returns the request host, lowercased, without the port.
	Host() string

	// Status sets the response status.
	Status(code int)

	// Header sets a response header.
	Header(key, value string)

	// ContentType sets the Content-Type response header.
	ContentType(value string)

	// Written reports whether the response has already been sent to the
	// wire. True only after dispatch seals the response or a middleware
	// wrote directly.
	Written() bool

	// Session returns the request session, creating one if the request
	// carries none. Fails with ErrSessionsNotConfigured unless the
	// application was built with WithSessions.
	Session() (*Session, error)

	// LastError returns the failure currently being recovered, if any.
	// It is set when the recovery pipeline runs and is meant for error
	// handlers registered via Router.Error.
	LastError() error

	// SetValue stores a request-scoped value retrievable via Value.
	SetValue(key, value any)

	// Redirect sets the Location header and halts with the given status.
	// Use it as a handler return:
	//
	//	return c.Redirect(http.StatusFound, "/login")
	Redirect(code int, location string) (any, error)

	// JSON marshals v, sets the JSON content type and the status, and
	// returns the encoded body as the handler result.
	JSON(code int, v any) (any, error)

	// View renders a named template from the registry configured with
	// WithViews and returns the rendered string.
	View(name string, data any) (string, error)

	// Render writes a templ component as the handler result with the
	// given status.
	Render(code int, component templ.Component) (any, error)

	// SendFile responds with the named file from fsys: content type from
	// the extension, Last-Modified from the file, conditional-GET aware.
	// Missing files fail with ErrNotFound.
	SendFile(fsys fs.FS, name string) (any, error)

	// ETag sets the ETag header and halts with 304 Not Modified when the
	// request's If-None-Match matches. Call it before producing a body:
	//
	//	if err := c.ETag(version); err != nil {
	//	    return nil, err
	//	}
	ETag(tag string) error

	// LastModified sets the Last-Modified header and halts with 304 Not
	// Modified when the request's If-Modified-Since is current.
	LastModified(t time.Time) error

	// Structured logging with request-scoped context.
	LogDebug(msg string, args ...any)
	LogInfo(msg string, args ...any)
	LogWarn(msg string, args ...any)
	LogError(msg string, args ...any)
}

type requestContext struct {
	ctx     context.Context
	req     *http.Request
	w       *ResponseWriter
	res     *Response
	app     *App
	params  *Params
	session *Session
	failure error
}

var _ Context = (*requestContext)(nil)

func newContext(w *ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		ctx:    r.Context(),
		req:    r,
		w:      w,
		res:    newResponse(),
		app:    app,
		params: newRequestParams(r),
	}
}

// context.Context delegation.

func (c *requestContext) Deadline() (time.Time, bool) { return c.ctx.Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.ctx.Done() }
func (c *requestContext) Err() error                  { return c.ctx.Err() }
func (c *requestContext) Value(key any) any           { return c.ctx.Value(key) }

func (c *requestContext) SetValue(key, value any) {
	c.ctx = context.WithValue(c.ctx, key, value)
}

func (c *requestContext) Request() *http.Request { return c.req }
func (c *requestContext) Response() *Response    { return c.res }
func (c *requestContext) Params() *Params        { return c.params }

func (c *requestContext) Param(name string) string { return c.params.Get(name) }

func (c *requestContext) Query(name string) string {
	return c.req.URL.Query().Get(name)
}

func (c *requestContext) Path() string {
	return c.req.URL.EscapedPath()
}

func (c *requestContext) Host() string {
	return hostrouter.Normalize(c.req.Host)
}

func (c *requestContext) Status(code int) { c.res.SetStatus(code) }

func (c *requestContext) Header(key, value string) { c.res.Header().Set(key, value) }

func (c *requestContext) ContentType(value string) {
	c.res.Header().Set("Content-Type", value)
}

func (c *requestContext) Written() bool { return c.w.Written() }

func (c *requestContext) LastError() error { return c.failure }

func (c *requestContext) Redirect(code int, location string) (any, error) {
	c.res.Header().Set("Location", location)
	c.res.ClearBody()
	return nil, Halt(code)
}

func (c *requestContext) JSON(code int, v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	c.res.SetStatus(code)
	c.ContentType("application/json; charset=utf-8")
	return b, nil
}

func (c *requestContext) View(name string, data any) (string, error) {
	if c.app.views == nil {
		return "", ErrViewsNotConfigured
	}
	return c.app.views.Render(c.ctx, name, data)
}

func (c *requestContext) Render(code int, component templ.Component) (any, error) {
	var buf bytes.Buffer
	if err := component.Render(c.ctx, &buf); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	c.res.SetStatus(code)
	c.ContentType("text/html; charset=utf-8")
	return buf.String(), nil
}

func (c *requestContext) SendFile(fsys fs.FS, name string) (any, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, ErrNotFound
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	if c.res.Header().Get("Content-Type") == "" {
		ct := mime.TypeByExtension(path.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.ContentType(ct)
	}
	if mod := info.ModTime(); !mod.IsZero() {
		if err := c.LastModified(mod); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	c.res.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	return f, nil
}

func (c *requestContext) ETag(tag string) error {
	if tag != "" && !strings.HasPrefix(tag, `"`) && !strings.HasPrefix(tag, "W/") {
		tag = `"` + tag + `"`
	}
	c.res.Header().Set("ETag", tag)

	match := c.req.Header.Get("If-None-Match")
	if match == "" {
		return nil
	}
	for _, candidate := range strings.Split(match, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate != "*" && candidate != tag {
			continue
		}
		if c.req.Method == http.MethodGet || c.req.Method == http.MethodHead {
			c.res.ClearBody()
			return Halt(http.StatusNotModified)
		}
		return Halt(http.StatusPreconditionFailed)
	}
	return nil
}

func (c *requestContext) LastModified(t time.Time) error {
	t = t.UTC().Truncate(time.Second)
	c.res.Header().Set("Last-Modified", t.Format(http.TimeFormat))

	since := c.req.Header.Get("If-Modified-Since")
	if since == "" || (c.req.Method != http.MethodGet && c.req.Method != http.MethodHead) {
		return nil
	}
	when, err := http.ParseTime(since)
	if err != nil {
		return nil
	}
	if !t.After(when) {
		c.res.ClearBody()
		return Halt(http.StatusNotModified)
	}
	return nil
}

// Logging delegates to the application logger with the request context,
// so handler decorators can enrich entries with request-scoped values.

func (c *requestContext) LogDebug(msg string, args ...any) {
	c.app.logger.DebugContext(c.ctx, msg, args...)
}

func (c *requestContext) LogInfo(msg string, args ...any) {
	c.app.logger.InfoContext(c.ctx, msg, args...)
}

func (c *requestContext) LogWarn(msg string, args ...any) {
	c.app.logger.WarnContext(c.ctx, msg, args...)
}

func (c *requestContext) LogError(msg string, args ...any) {
	c.app.logger.ErrorContext(c.ctx, msg, args...)
}
