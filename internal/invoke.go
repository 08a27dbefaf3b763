package internal

import (
	"fmt"
	"io"
	"iter"
	"net/http"
)

// maxRefDepth bounds helper alias chains so a helper returning its own
// Ref cannot spin forever.
const maxRefDepth = 16

// invoke calls a handler and normalizes its result into the response.
// Halt signals are intercepted here and their payload normalized in place
// of the return value; pass signals and failures propagate to the caller.
func (a *App) invoke(c *requestContext, h HandlerFunc) error {
	res, err := h(c)
	if err != nil {
		halt, ok := asHalt(err)
		if !ok {
			return err
		}
		res = halt.res
	}
	return a.normalize(c, res, 0)
}

// normalize maps the closed set of handler result shapes onto the
// response:
//
//	nil               empty body
//	string, []byte    body, single chunk
//	[]string          body, one chunk per element
//	iter.Seq[string]  body streamed in iteration order at seal time
//	io.Reader         body streamed at seal time
//	int (100..599)    status only, body untouched
//	[]any{status, body}
//	[]any{status, headers, body}
//	Ref               result of the named helper, normalized recursively
//
// Anything else fails with ErrTypeConversion.
func (a *App) normalize(c *requestContext, res any, depth int) error {
	if depth > maxRefDepth {
		return fmt.Errorf("%w: helper alias chain exceeds %d links", ErrTypeConversion, maxRefDepth)
	}
	switch v := res.(type) {
	case nil:
		c.res.ClearBody()
		return nil
	case string:
		c.res.SetBodyString(v)
		return nil
	case []byte:
		c.res.SetBodyBytes(v)
		return nil
	case []string:
		c.res.SetBodyChunks(v)
		return nil
	case iter.Seq[string]:
		c.res.SetBodySeq(v)
		return nil
	case int:
		if v < 100 || v > 599 {
			return fmt.Errorf("%w: status %d out of range", ErrTypeConversion, v)
		}
		c.res.SetStatus(v)
		return nil
	case []any:
		return a.normalizeTuple(c, v, depth)
	case Ref:
		return a.resolveRef(c, v, depth)
	case io.Reader:
		c.res.SetBodyReader(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrTypeConversion, res)
	}
}

func (a *App) normalizeTuple(c *requestContext, tuple []any, depth int) error {
	if len(tuple) == 0 {
		return fmt.Errorf("%w: empty tuple", ErrTypeConversion)
	}
	status, ok := tuple[0].(int)
	if !ok {
		return fmt.Errorf("%w: tuple must start with an int status, got %T", ErrTypeConversion, tuple[0])
	}
	switch len(tuple) {
	case 2:
		c.res.SetStatus(status)
		return a.normalizeBody(c, tuple[1], depth)
	case 3:
		c.res.SetStatus(status)
		if err := mergeHeaders(c.res.Header(), tuple[1]); err != nil {
			return err
		}
		return a.normalizeBody(c, tuple[2], depth)
	default:
		return fmt.Errorf("%w: tuple length %d, want 2 or 3", ErrTypeConversion, len(tuple))
	}
}

// normalizeBody handles the body slot of a status tuple. A nil slot keeps
// whatever body was already set.
func (a *App) normalizeBody(c *requestContext, body any, depth int) error {
	switch v := body.(type) {
	case nil:
		return nil
	case string:
		c.res.SetBodyString(v)
	case []byte:
		c.res.SetBodyBytes(v)
	case []string:
		c.res.SetBodyChunks(v)
	case iter.Seq[string]:
		c.res.SetBodySeq(v)
	case Ref:
		return a.resolveRef(c, v, depth)
	case io.Reader:
		c.res.SetBodyReader(v)
	default:
		return fmt.Errorf("%w: unsupported tuple body %T", ErrTypeConversion, body)
	}
	return nil
}

// mergeHeaders lays tuple headers over the response headers, replacing
// per key and leaving other keys alone.
func mergeHeaders(dst http.Header, headers any) error {
	switch h := headers.(type) {
	case nil:
		return nil
	case http.Header:
		for k, vv := range h {
			dst[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
		}
	case map[string]string:
		for k, v := range h {
			dst.Set(k, v)
		}
	case map[string][]string:
		for k, vv := range h {
			dst[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
		}
	default:
		return fmt.Errorf("%w: unsupported tuple headers %T", ErrTypeConversion, headers)
	}
	return nil
}

// resolveRef looks up the named helper and normalizes its result. Halt
// inside a helper behaves exactly as in a handler.
func (a *App) resolveRef(c *requestContext, ref Ref, depth int) error {
	h, ok := a.helpers[string(ref)]
	if !ok {
		return fmt.Errorf("%w: no helper named %q", ErrTypeConversion, string(ref))
	}
	res, err := h(c)
	if err != nil {
		halt, ok := asHalt(err)
		if !ok {
			return err
		}
		res = halt.res
	}
	return a.normalize(c, res, depth+1)
}
