package view

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"github.com/a-h/templ"
)

// Engine renders a named template from a filesystem. Implementations cache
// compiled templates and must be safe for concurrent use.
type Engine interface {
	Render(ctx context.Context, fsys fs.FS, name string, data any) (string, error)
}

// ComponentFunc builds a templ component from render data. Registered
// components are rendered by name, bypassing filesystem engines.
type ComponentFunc func(data any) templ.Component

// Registry routes render calls to engines by template extension.
// Build one with New and share it; it is safe for concurrent use.
type Registry struct {
	fsys       fs.FS
	engines    map[string]Engine
	components map[string]ComponentFunc
}

// New creates a template registry over fsys. Engines for ".html"
// (html/template with optional layout) and ".md" (goldmark) are registered
// out of the box; options add components, custom engines, and engine
// configuration.
func New(fsys fs.FS, opts ...Option) (*Registry, error) {
	if fsys == nil {
		return nil, errors.New("view: nil filesystem")
	}

	cfg := &config{
		engines:    make(map[string]Engine),
		components: make(map[string]ComponentFunc),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.subDir != "" {
		sub, err := fs.Sub(fsys, cfg.subDir)
		if err != nil {
			return nil, fmt.Errorf("view: sub dir %s: %w", cfg.subDir, err)
		}
		fsys = sub
	}

	engines := map[string]Engine{
		".html": newHTMLEngine(cfg.layout, cfg.funcs),
		".md":   newMarkdownEngine(cfg.inlineHTML),
	}
	// Custom engines override the defaults for their extension.
	maps.Copy(engines, cfg.engines)

	return &Registry{
		fsys:       fsys,
		engines:    engines,
		components: cfg.components,
	}, nil
}

// Render renders the named template with data. Registered components match
// by exact name first; otherwise the engine for the name's extension runs.
func (r *Registry) Render(ctx context.Context, name string, data any) (string, error) {
	if fn, ok := r.components[name]; ok {
		var sb strings.Builder
		if err := fn(data).Render(ctx, &sb); err != nil {
			return "", fmt.Errorf("%w: component %s: %v", ErrRenderFailed, name, err)
		}
		return sb.String(), nil
	}

	ext := path.Ext(name)
	engine, ok := r.engines[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoEngine, ext)
	}

	return engine.Render(ctx, r.fsys, name, data)
}
