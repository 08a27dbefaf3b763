// Package view renders named templates through per-extension engines.
//
// A Registry maps template extensions to engines. Out of the box ".html"
// renders through html/template (with an optional shared layout) and ".md"
// renders through goldmark. Compiled templates are cached, so each file is
// parsed once regardless of how many requests render it concurrently.
//
// # Usage
//
//	//go:embed views
//	var viewsFS embed.FS
//
//	reg, err := view.New(viewsFS,
//		view.WithSubDir("views"),
//		view.WithLayout("layout.html"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	html, err := reg.Render(ctx, "index.html", map[string]any{"Title": "Home"})
//
// # Layouts
//
// With [WithLayout], every rendered HTML page is injected into the layout
// template as pre-rendered HTML:
//
//	<!DOCTYPE html>
//	<html><body>{{.Content}}</body></html>
//
// The layout also receives the original render data under .Data.
//
// # Markdown
//
// Markdown files run as text templates first, so pages can interpolate
// data, then convert to HTML with GitHub-flavored markdown extensions. Raw
// inline HTML is escaped unless the registry was built with
// [WithInlineHTML], which instead sanitizes the converted output.
//
// # Components
//
// templ components registered with [WithComponent] render by exact name,
// bypassing the filesystem:
//
//	reg, _ := view.New(viewsFS,
//		view.WithComponent("profile", func(data any) templ.Component {
//			return pages.Profile(data.(*User))
//		}),
//	)
//	html, err := reg.Render(ctx, "profile", user)
//
// # Custom engines
//
// Any type implementing [Engine] can serve an extension via [WithEngine],
// replacing a default engine or adding a new extension.
package view
