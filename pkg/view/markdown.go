package view

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/aria/pkg/cache"
	"github.com/dmitrymomot/aria/pkg/id"
	"github.com/dmitrymomot/aria/pkg/sanitizer"
)

// markdownEngine executes a markdown file as a text template, then converts
// the result to HTML. Markdown is text, so the body template deliberately
// skips html/template escaping; goldmark escapes raw HTML unless inlineHTML
// is set, in which case the converted output is sanitized instead.
type markdownEngine struct {
	id         string
	md         goldmark.Markdown
	inlineHTML bool
	cache      *cache.Memory[*template.Template]
}

func newMarkdownEngine(inlineHTML bool) *markdownEngine {
	mdOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
	}
	if inlineHTML {
		mdOpts = append(mdOpts, goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()))
	}

	return &markdownEngine{
		id:         id.NewShortID(),
		md:         goldmark.New(mdOpts...),
		inlineHTML: inlineHTML,
		cache:      cache.NewMemory[*template.Template](cache.WithCleanupInterval(0)),
	}
}

func (e *markdownEngine) Render(ctx context.Context, fsys fs.FS, name string, data any) (string, error) {
	tmpl, err := e.compile(ctx, fsys, name)
	if err != nil {
		return "", err
	}

	var source bytes.Buffer
	if err := tmpl.Execute(&source, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var out bytes.Buffer
	if err := e.md.Convert(source.Bytes(), &out); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	if e.inlineHTML {
		return sanitizer.SanitizeMarkdown(out.String()), nil
	}
	return out.String(), nil
}

func (e *markdownEngine) compile(ctx context.Context, fsys fs.FS, name string) (*template.Template, error) {
	return cache.GetOrSet(ctx, e.cache, e.id+":"+name, func(context.Context) (*template.Template, time.Duration, error) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
		}
		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		return tmpl, -1, nil
	})
}
