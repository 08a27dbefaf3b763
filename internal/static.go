package internal

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// staticRoute serves files for one URL prefix out of an fs.FS.
type staticRoute struct {
	prefix string
	fsys   fs.FS
}

func newStaticRoute(prefix string, fsys fs.FS) *staticRoute {
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &staticRoute{prefix: prefix, fsys: fsys}
}

// serveStatic tries each static mount before handing the request to the
// dispatch pipeline. Only GET and HEAD are served; misses fall through
// so routes can answer the same paths.
func (a *App) serveStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			for _, sr := range a.statics {
				if sr.serve(w, r) {
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// serve writes the file matching the request path, reporting whether it
// handled the request. Directory listings are never served.
func (sr *staticRoute) serve(w http.ResponseWriter, r *http.Request) bool {
	p := r.URL.Path
	if !strings.HasPrefix(p, sr.prefix) {
		return false
	}
	if strings.HasSuffix(p, "/") {
		return false
	}
	name := path.Clean(strings.TrimPrefix(p, sr.prefix))
	if !fs.ValidPath(name) {
		return false
	}

	f, err := sr.fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	content, ok := f.(io.ReadSeeker)
	if !ok {
		// ServeContent needs a seeker for range requests; buffer
		// filesystems that cannot seek.
		raw, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return true
		}
		content = bytes.NewReader(raw)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	return true
}
