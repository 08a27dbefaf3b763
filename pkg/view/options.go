package view

import "html/template"

// Option configures the registry.
type Option func(*config)

type config struct {
	subDir     string
	layout     string
	funcs      template.FuncMap
	inlineHTML bool
	engines    map[string]Engine
	components map[string]ComponentFunc
}

// WithSubDir roots the registry at a subdirectory of the filesystem,
// typically to strip an embed prefix:
//
//	//go:embed views
//	var viewsFS embed.FS
//
//	view.New(viewsFS, view.WithSubDir("views"))
func WithSubDir(dir string) Option {
	return func(cfg *config) {
		cfg.subDir = dir
	}
}

// WithLayout wraps every rendered HTML template in the named layout
// template. The layout receives the rendered page under .Content and the
// original data under .Data:
//
//	<html><body>{{.Content}}</body></html>
func WithLayout(name string) Option {
	return func(cfg *config) {
		cfg.layout = name
	}
}

// WithFuncs adds functions available to HTML templates.
func WithFuncs(funcs template.FuncMap) Option {
	return func(cfg *config) {
		cfg.funcs = funcs
	}
}

// WithInlineHTML lets markdown templates carry raw inline HTML. The
// rendered output is sanitized, so scripts and event handlers are stripped
// while formatting tags pass through. Without this option goldmark escapes
// raw HTML entirely.
func WithInlineHTML() Option {
	return func(cfg *config) {
		cfg.inlineHTML = true
	}
}

// WithEngine registers an engine for a template extension (with leading
// dot, e.g. ".txt"). Registering ".html" or ".md" replaces the default
// engine.
func WithEngine(ext string, e Engine) Option {
	return func(cfg *config) {
		if ext != "" && e != nil {
			cfg.engines[ext] = e
		}
	}
}

// WithComponent registers a templ component under a name. Render calls
// matching the name exactly use the component instead of a file.
func WithComponent(name string, fn ComponentFunc) Option {
	return func(cfg *config) {
		if name != "" && fn != nil {
			cfg.components[name] = fn
		}
	}
}
