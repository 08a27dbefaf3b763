package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/dmitrymomot/aria/pkg/cache"
	"github.com/dmitrymomot/aria/pkg/id"
)

// htmlEngine renders html/template files, optionally wrapped in a layout.
type htmlEngine struct {
	// id namespaces singleflight keys so concurrent registries over
	// different filesystems never share compiled templates.
	id     string
	layout string
	funcs  template.FuncMap
	cache  *cache.Memory[*template.Template]
}

func newHTMLEngine(layout string, funcs template.FuncMap) *htmlEngine {
	return &htmlEngine{
		id:     id.NewShortID(),
		layout: layout,
		funcs:  funcs,
		cache:  cache.NewMemory[*template.Template](cache.WithCleanupInterval(0)),
	}
}

func (e *htmlEngine) Render(ctx context.Context, fsys fs.FS, name string, data any) (string, error) {
	tmpl, err := e.compile(ctx, fsys, name)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	if e.layout == "" || name == e.layout {
		return body.String(), nil
	}

	layout, err := e.compile(ctx, fsys, e.layout)
	if err != nil {
		return "", err
	}

	var page bytes.Buffer
	err = layout.Execute(&page, map[string]any{
		"Content": template.HTML(body.String()),
		"Data":    data,
	})
	if err != nil {
		return "", fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, e.layout, err)
	}

	return page.String(), nil
}

// compile parses the named template once; concurrent renders of the same
// template share a single parse.
func (e *htmlEngine) compile(ctx context.Context, fsys fs.FS, name string) (*template.Template, error) {
	return cache.GetOrSet(ctx, e.cache, e.id+":"+name, func(context.Context) (*template.Template, time.Duration, error) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
		}
		tmpl, err := template.New(name).Funcs(e.funcs).Parse(string(content))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		return tmpl, -1, nil
	})
}
