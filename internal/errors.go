package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds produced by the dispatch pipeline. Handlers may also
// return these to trigger the corresponding recovery path, e.g. returning
// ErrNotFound renders the application's 404 response.
var (
	// ErrNotFound reports that no route matched the request.
	ErrNotFound = errors.New("aria: not found")

	// ErrTypeConversion reports a handler result outside the supported
	// shapes (see invoke.go for the full set).
	ErrTypeConversion = errors.New("aria: unsupported handler result")

	// ErrInvalidPathSpec reports a route pattern that is neither a
	// string, a *regexp.Regexp, nor a Matcher.
	ErrInvalidPathSpec = errors.New("aria: invalid route pattern")

	// ErrSessionsNotConfigured is returned by Context.Session when the
	// application was built without WithSessions.
	ErrSessionsNotConfigured = errors.New("aria: sessions not configured")

	// ErrViewsNotConfigured is returned by Context.View when the
	// application was built without WithViews.
	ErrViewsNotConfigured = errors.New("aria: views not configured")
)

// errPass makes the dispatcher treat the current route as non-matching
// and resume scanning with the next candidate. It never escapes dispatch.
var errPass = errors.New("aria: pass")

// Pass returns the control signal that skips the current route. Returned
// from a handler or a guard it moves dispatch to the next candidate
// route; returned from a before filter it only ends that filter.
func Pass() error { return errPass }

func isPass(err error) bool { return errors.Is(err, errPass) }

// haltSignal carries an early result up the call stack. It is intercepted
// at the handler-invocation boundary and normalized exactly like a
// regular return value.
type haltSignal struct{ res any }

func (h *haltSignal) Error() string { return "aria: halt" }

// Halt stops handler execution immediately and uses res as the handler
// result. res accepts every shape a handler may return:
//
//	return nil, aria.Halt(403)
//	return nil, aria.Halt([]any{429, "slow down"})
func Halt(res any) error { return &haltSignal{res: res} }

func asHalt(err error) (*haltSignal, bool) {
	var h *haltSignal
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}

// RecoveryError wraps a failure raised while running a recovery handler.
// It is always fatal: the dispatcher propagates it to the hosting server
// instead of attempting another recovery round.
type RecoveryError struct {
	// Recovery is the failure raised by the recovery handler.
	Recovery error

	// Original is the failure that was being recovered, nil when the
	// recovery handler ran for a terminal status code.
	Original error
}

func (e *RecoveryError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("aria: recovery failed: %v (original failure: %v)", e.Recovery, e.Original)
	}
	return fmt.Sprintf("aria: recovery failed: %v", e.Recovery)
}

func (e *RecoveryError) Unwrap() error { return e.Recovery }

// HTTPError is a failure with an explicit status code. When a handler
// returns one, the recovery pipeline uses Code instead of the default 500
// before looking up recovery handlers.
type HTTPError struct {
	// Err is the underlying error, kept for logging.
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func (e *HTTPError) StatusCode() int { return e.Code }

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// NewHTTPError creates an HTTPError with the given status code and
// user-facing message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message, opts...)
}

// AsHTTPError extracts an HTTPError from an error chain.
// Returns nil if the chain contains none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
