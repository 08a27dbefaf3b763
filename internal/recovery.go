package internal

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"runtime/debug"
	"strings"
)

const (
	defaultNotFoundBody = "<h1>Not Found</h1>"

	htmlContentType = "text/html; charset=utf-8"
)

// perform runs the full request lifecycle against the buffered response:
// dispatch, failure recovery, after filters, and status-keyed recovery.
// When it returns the response is final and ready to seal. A non-nil
// return means recovery itself failed; the response is already forced
// to a bare 500 and the error is reported for the caller to surface.
func (a *App) perform(c *requestContext) error {
	var fatal error
	if failure := a.safeDispatch(c); failure != nil {
		fatal = a.recoverFailure(c, failure)
	}
	if err := a.runAfterFilters(c); err != nil && fatal == nil {
		fatal = err
	}
	if fatal == nil {
		fatal = a.statusRecovery(c)
	}
	if fatal != nil {
		a.finalizeFailure(c, fatal)
	}
	return fatal
}

// safeDispatch runs dispatch with a panic guard, converting handler
// panics into ordinary failures for the recovery pipeline.
func (a *App) safeDispatch(c *requestContext) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = a.recoverPanic(c, rec)
		}
	}()
	return a.dispatch(c)
}

// safeInvoke guards recovery handlers and after filters the same way, so
// a panicking error page cannot take the worker down.
func (a *App) safeInvoke(c *requestContext, h HandlerFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = a.recoverPanic(c, rec)
		}
	}()
	return a.invoke(c, h)
}

func (a *App) recoverPanic(c *requestContext, rec any) error {
	if rec == http.ErrAbortHandler {
		// The server aborts in-flight responses with this sentinel.
		panic(rec)
	}
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", rec)
	}
	c.LogError("panic recovered",
		"error", err,
		"method", c.req.Method,
		"path", c.Path(),
		"stack", string(debug.Stack()),
	)
	return err
}

// recoverFailure applies the recovery policy to a dispatch failure and
// returns nil once a response is in place. The returned error is fatal:
// a recovery handler itself failed.
//
// A not-found failure gets the canonical 404 response before the
// registered handler, if any, refines it. Every other failure resolves
// its status (HTTPError codes win over the default 500), then the
// matching kind handler or the fallback handler runs with the staged
// body still in place; with neither registered the body is dropped and
// a minimal HTML body emitted.
func (a *App) recoverFailure(c *requestContext, failure error) error {
	c.failure = failure
	res := c.res

	if errors.Is(failure, ErrNotFound) {
		res.SetStatus(http.StatusNotFound)
		res.Header().Set("X-Cascade", "pass")
		res.Header().Set("Content-Type", htmlContentType)
		res.SetBodyString(defaultNotFoundBody)
		if a.notFound != nil {
			return a.recoverWith(c, a.notFound, failure)
		}
		if h := a.kindHandlerFor(failure); h != nil {
			return a.recoverWith(c, h, failure)
		}
		return nil
	}

	if a.raiseErrors {
		// Hand the failure to the hosting server untouched. Outer
		// middleware (or a test harness) is expected to pick it up.
		panic(failure)
	}

	c.LogError("request failed",
		"error", failure,
		"method", c.req.Method,
		"path", c.Path(),
	)

	status := http.StatusInternalServerError
	if herr := AsHTTPError(failure); herr != nil && herr.Code >= 400 && herr.Code <= 599 {
		status = herr.Code
	}
	// Only the status is forced here. A registered handler may return a
	// status-only result and keep whatever body was staged before the
	// failure; the default error body is for unhandled failures alone.
	res.SetStatus(status)

	if h := a.kindHandlerFor(failure); h != nil {
		return a.recoverWith(c, h, failure)
	}
	if a.errorAny != nil {
		return a.recoverWith(c, a.errorAny, failure)
	}
	res.ClearBody()
	a.setDefaultErrorBody(c, failure)
	return nil
}

// kindHandlerFor returns the most recently registered kind handler
// matching the failure, so later registrations shadow earlier ones.
func (a *App) kindHandlerFor(failure error) HandlerFunc {
	for i := len(a.errorKinds) - 1; i >= 0; i-- {
		if errors.Is(failure, a.errorKinds[i].kind) {
			return a.errorKinds[i].handler
		}
	}
	return nil
}

// recoverWith runs a recovery handler. Its result replaces the staged
// response; its failure is wrapped into a fatal RecoveryError together
// with the failure that was being recovered.
func (a *App) recoverWith(c *requestContext, h HandlerFunc, original error) error {
	if err := a.safeInvoke(c, h); err != nil {
		return &RecoveryError{Recovery: err, Original: original}
	}
	return nil
}

// runAfterFilters runs every after filter. Filters run even when the
// request failed, so cleanup always happens. A filter failure enters the
// recovery pipeline unless a failure was already recovered this request,
// in which case it is logged and dropped rather than clobbering the
// recovered response.
func (a *App) runAfterFilters(c *requestContext) error {
	for _, f := range a.afterFilters {
		err := f(c)
		if err == nil || isPass(err) {
			continue
		}
		if halt, ok := asHalt(err); ok {
			err = a.normalize(c, halt.res, 0)
			if err == nil {
				continue
			}
		}
		if c.failure != nil {
			c.LogError("after filter failed post-recovery", "error", err)
			continue
		}
		if fatal := a.recoverFailure(c, err); fatal != nil {
			return fatal
		}
	}
	return nil
}

// statusRecovery runs the handler registered for the response's final
// error status, if any. It runs on top of whatever produced the status:
// a handler returning 404, the canonical not-found response, or a
// recovered failure.
func (a *App) statusRecovery(c *requestContext) error {
	status := c.res.Status()
	if status < 400 {
		return nil
	}
	h, ok := a.errorStatuses[status]
	if !ok {
		return nil
	}
	return a.recoverWith(c, h, c.failure)
}

// finalizeFailure is the terminal path for recovery-handler failures.
// No further handlers run; the response is forced to a bare 500.
func (a *App) finalizeFailure(c *requestContext, fatal error) {
	c.LogError("recovery failed",
		"error", fatal,
		"method", c.req.Method,
		"path", c.Path(),
	)
	res := c.res
	res.SetStatus(http.StatusInternalServerError)
	res.Header().Set("Content-Type", htmlContentType)
	res.SetBodyString("<h1>Internal Server Error</h1>")
}

func (a *App) setDefaultErrorBody(c *requestContext, failure error) {
	res := c.res
	if !bodyAllowedForStatus(res.Status()) {
		return
	}

	title := http.StatusText(res.Status())
	if title == "" {
		title = "Internal Server Error"
	}
	if herr := AsHTTPError(failure); herr != nil && herr.Message != "" {
		title = herr.Message
	}

	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</h1>")
	if a.env == EnvDevelopment && failure != nil {
		b.WriteString("\n<pre>")
		b.WriteString(html.EscapeString(failure.Error()))
		b.WriteString("</pre>")
	}

	res.Header().Set("Content-Type", htmlContentType)
	res.SetBodyString(b.String())
}
