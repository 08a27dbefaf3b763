package internal

import (
	"bytes"
	"io"
	"iter"
	"net/http"
	"strconv"
)

// Response is the mutable response under construction for one request.
// Handlers and filters shape it through the Context; nothing reaches the
// wire until the dispatcher seals it after the recovery pipeline has run,
// so recovery handlers can still replace status, headers, and body.
//
// The body is one of: buffered chunks, an io.Reader drained at seal time,
// or a string sequence written chunk by chunk as produced.
type Response struct {
	header http.Header
	chunks [][]byte
	reader io.Reader
	seq    iter.Seq[string]
	status int
}

func newResponse() *Response {
	return &Response{
		header: http.Header{},
		status: http.StatusOK,
	}
}

// Status returns the current response status. Defaults to 200.
func (r *Response) Status() int { return r.status }

// SetStatus replaces the response status.
func (r *Response) SetStatus(code int) { r.status = code }

// Header returns the mutable response headers.
func (r *Response) Header() http.Header { return r.header }

// SetBodyString replaces the body with a single string chunk.
func (r *Response) SetBodyString(s string) {
	r.resetBody()
	r.chunks = [][]byte{[]byte(s)}
}

// SetBodyBytes replaces the body with a single byte chunk. The slice is
// used as-is; callers must not mutate it afterwards.
func (r *Response) SetBodyBytes(b []byte) {
	r.resetBody()
	r.chunks = [][]byte{b}
}

// SetBodyChunks replaces the body with an ordered sequence of chunks.
func (r *Response) SetBodyChunks(chunks []string) {
	r.resetBody()
	r.chunks = make([][]byte, len(chunks))
	for i, c := range chunks {
		r.chunks[i] = []byte(c)
	}
}

// SetBodyReader replaces the body with a stream drained at seal time.
// If the reader is an io.Closer it is closed after sealing, including
// when the body is discarded (HEAD requests, 204/304 statuses).
func (r *Response) SetBodyReader(rd io.Reader) {
	r.resetBody()
	r.reader = rd
}

// SetBodySeq replaces the body with a string sequence, each element
// written in iteration order as produced.
func (r *Response) SetBodySeq(seq iter.Seq[string]) {
	r.resetBody()
	r.seq = seq
}

// ClearBody resets the body to the empty sequence.
func (r *Response) ClearBody() { r.resetBody() }

// HasBody reports whether any body source is set.
func (r *Response) HasBody() bool {
	return len(r.chunks) > 0 || r.reader != nil || r.seq != nil
}

// Buffered returns the joined buffered body and true, or false when the
// body is a stream or a sequence.
func (r *Response) Buffered() ([]byte, bool) {
	if r.reader != nil || r.seq != nil {
		return nil, false
	}
	return bytes.Join(r.chunks, nil), true
}

func (r *Response) resetBody() {
	if c, ok := r.reader.(io.Closer); ok {
		_ = c.Close()
	}
	r.chunks = nil
	r.reader = nil
	r.seq = nil
}

// contentLength returns the buffered body size, or -1 for streams.
func (r *Response) contentLength() int64 {
	if r.reader != nil || r.seq != nil {
		return -1
	}
	var n int64
	for _, c := range r.chunks {
		n += int64(len(c))
	}
	return n
}

// seal writes the response to the wire exactly once: headers first, then
// the body unless the request method or status forbids one. A stream body
// is drained here and closed if it is an io.Closer.
func (r *Response) seal(w *ResponseWriter, discardBody bool) error {
	h := w.Header()
	for k, vv := range r.header {
		h[k] = vv
	}

	status := r.status
	if status < 100 || status > 999 {
		status = http.StatusInternalServerError
	}
	writeBody := !discardBody && bodyAllowedForStatus(status)

	if r.HasBody() && h.Get("Content-Type") == "" {
		h.Set("Content-Type", "text/html; charset=utf-8")
	}
	if n := r.contentLength(); n >= 0 && bodyAllowedForStatus(status) && h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.FormatInt(n, 10))
	}

	w.WriteHeader(status)

	if !writeBody {
		r.resetBody()
		return nil
	}

	switch {
	case r.reader != nil:
		rd := r.reader
		r.reader = nil
		_, err := io.Copy(w, rd)
		if c, ok := rd.(io.Closer); ok {
			_ = c.Close()
		}
		return err
	case r.seq != nil:
		for chunk := range r.seq {
			if _, err := io.WriteString(w, chunk); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, chunk := range r.chunks {
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		}
		return nil
	}
}

// bodyAllowedForStatus mirrors RFC 9110: no body for 1xx, 204, and 304.
func bodyAllowedForStatus(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
