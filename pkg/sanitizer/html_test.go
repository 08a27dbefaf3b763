package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/aria/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "strips nested tags",
			input:    `<div><p>nested <span>content</span></p></div>`,
			expected: "nested content",
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			expected: "normal text without HTML",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "strips iframe",
			input:    `<iframe src="https://evil.com"></iframe>content`,
			expected: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.StripHTML(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection but keeps safe tags",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "<p>Hello</p>",
		},
		{
			name:     "allows basic formatting",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "<p>Hello <strong>world</strong></p>",
		},
		{
			name:     "allows lists",
			input:    `<ul><li>item 1</li><li>item 2</li></ul>`,
			expected: "<ul><li>item 1</li><li>item 2</li></ul>",
		},
		{
			name:     "allows code blocks",
			input:    `<pre><code>func main() {}</code></pre>`,
			expected: "<pre><code>func main() {}</code></pre>",
		},
		{
			name:     "allows safe links with nofollow",
			input:    `<a href="https://example.com">link</a>`,
			expected: `<a href="https://example.com" rel="nofollow">link</a>`,
		},
		{
			name:     "strips javascript URLs from links",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert('xss')">content</p>`,
			expected: "<p>content</p>",
		},
		{
			name:     "strips img tags",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips headings",
			input:    `<h1>title</h1>`,
			expected: "title",
		},
		{
			name:     "allows line breaks",
			input:    `line1<br>line2`,
			expected: `line1<br>line2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.SanitizeHTML(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "allows headings",
			input:    `<h1>Title</h1><p>body</p>`,
			expected: `<h1>Title</h1><p>body</p>`,
		},
		{
			name:     "allows images",
			input:    `<img src="https://example.com/photo.jpg" alt="photo">`,
			expected: `<img src="https://example.com/photo.jpg" alt="photo">`,
		},
		{
			name:     "allows fenced code output",
			input:    `<pre><code>x := 1</code></pre>`,
			expected: `<pre><code>x := 1</code></pre>`,
		},
		{
			name:     "strips script from rendered output",
			input:    `<h2>ok</h2><script>alert('xss')</script>`,
			expected: `<h2>ok</h2>`,
		},
		{
			name:     "strips event handlers from images",
			input:    `<img src="x.png" onerror="alert('xss')">`,
			expected: `<img src="x.png">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.SanitizeMarkdown(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("with custom policy allowing img", func(t *testing.T) {
		t.Parallel()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("img")
		policy.AllowAttrs("src", "alt").OnElements("img")

		input := `<img src="photo.jpg" alt="photo" onerror="alert('xss')">`
		result := sanitizer.SanitizeHTMLCustom(input, policy)
		assert.Equal(t, `<img src="photo.jpg" alt="photo">`, result)
	})

	t.Run("with nil policy returns input unchanged", func(t *testing.T) {
		t.Parallel()

		input := `<script>alert('xss')</script>`
		result := sanitizer.SanitizeHTMLCustom(input, nil)
		assert.Equal(t, input, result)
	})
}

func TestXSSVectors(t *testing.T) {
	t.Parallel()

	// Common attack vectors that every policy must neutralize.
	vectors := []struct {
		name  string
		input string
	}{
		{
			name:  "script tag",
			input: `<script>alert('XSS')</script>`,
		},
		{
			name:  "script tag with src",
			input: `<script src="https://evil.com/xss.js"></script>`,
		},
		{
			name:  "img onerror",
			input: `<img src="x" onerror="alert('XSS')">`,
		},
		{
			name:  "svg onload",
			input: `<svg onload="alert('XSS')">`,
		},
		{
			name:  "javascript protocol",
			input: `<a href="javascript:alert('XSS')">click</a>`,
		},
		{
			name:  "javascript protocol case variation",
			input: `<a href="JaVaScRiPt:alert('XSS')">click</a>`,
		},
		{
			name:  "data URL",
			input: `<a href="data:text/html;base64,PHNjcmlwdD5hbGVydCgnWFNTJyk8L3NjcmlwdD4=">click</a>`,
		},
		{
			name:  "style expression",
			input: `<div style="width:expression(alert('XSS'))">`,
		},
		{
			name:  "iframe",
			input: `<iframe src="javascript:alert('XSS')"></iframe>`,
		},
		{
			name:  "input onfocus",
			input: `<input onfocus="alert('XSS')" autofocus>`,
		},
		{
			name:  "details ontoggle",
			input: `<details open ontoggle="alert('XSS')">`,
		},
	}

	sanitizers := map[string]func(string) string{
		"StripHTML":        sanitizer.StripHTML,
		"SanitizeHTML":     sanitizer.SanitizeHTML,
		"SanitizeMarkdown": sanitizer.SanitizeMarkdown,
	}

	for name, fn := range sanitizers {
		for _, v := range vectors {
			t.Run(name+"_"+v.name, func(t *testing.T) {
				t.Parallel()

				result := fn(v.input)
				assert.NotContains(t, result, "<script")
				assert.NotContains(t, result, "javascript:")
				assert.NotContains(t, result, "onerror=")
				assert.NotContains(t, result, "onload=")
				assert.NotContains(t, result, "alert(")
			})
		}
	}
}
