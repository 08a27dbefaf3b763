package internal

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// pattern is a compiled route matcher. String patterns compile into an
// anchored regexp with one capture group per :name or * token; the names
// slice aligns with the groups in order, with "splat" repeated for each
// wildcard. Caller-supplied regexps and Matchers pass through with no
// derived names; their captures surface under the "captures" parameter.
type pattern struct {
	raw     string
	names   []string
	rx      *regexp.Regexp
	matcher Matcher
}

// compilePattern compiles a route path spec. Accepted specs are a pattern
// string (literal segments, :name parameters, * wildcards), a
// *regexp.Regexp, or a Matcher. Anything else fails with
// ErrInvalidPathSpec.
func compilePattern(spec any) (*pattern, error) {
	switch v := spec.(type) {
	case string:
		return compileString(v)
	case *regexp.Regexp:
		if v == nil {
			return nil, fmt.Errorf("%w: nil regexp", ErrInvalidPathSpec)
		}
		return &pattern{raw: v.String(), rx: v}, nil
	case Matcher:
		if v == nil {
			return nil, fmt.Errorf("%w: nil matcher", ErrInvalidPathSpec)
		}
		return &pattern{raw: fmt.Sprintf("%v", v), matcher: v}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidPathSpec, spec)
	}
}

// compileString turns a pattern string into an anchored regexp matched
// against the escaped request path. Literal characters are percent-encoded
// the way a request path arrives on the wire, so patterns may contain
// spaces and other raw characters.
func compileString(spec string) (*pattern, error) {
	encoded := encodePath(spec)

	var (
		b     strings.Builder
		names []string
	)
	b.WriteString(`\A`)
	for i := 0; i < len(encoded); {
		switch {
		case encoded[i] == '*':
			names = append(names, "splat")
			b.WriteString(`(.*?)`)
			i++
		case encoded[i] == ':' && i+1 < len(encoded) && isIdentByte(encoded[i+1]):
			j := i + 1
			for j < len(encoded) && isIdentByte(encoded[j]) {
				j++
			}
			names = append(names, encoded[i+1:j])
			b.WriteString(`([^/?&#.]+)`)
			i = j
		default:
			j := i + 1
			for j < len(encoded) && encoded[j] != '*' && !(encoded[j] == ':' && j+1 < len(encoded) && isIdentByte(encoded[j+1])) {
				j++
			}
			b.WriteString(regexp.QuoteMeta(encoded[i:j]))
			i = j
		}
	}
	b.WriteString(`\z`)

	rx, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPathSpec, spec, err)
	}
	return &pattern{raw: spec, names: names, rx: rx}, nil
}

// match tests the escaped request path and returns the captured
// substrings in group order.
func (p *pattern) match(path string) ([]string, bool) {
	if p.matcher != nil {
		return p.matcher.MatchPath(path)
	}
	m := p.rx.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// paramNames returns the capture names declared by a string pattern, in
// group order. Empty for regexp and Matcher patterns.
func (p *pattern) paramNames() []string { return p.names }

func (p *pattern) String() string { return p.raw }

func isIdentByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

// encodePath percent-encodes the bytes of a pattern that could not appear
// raw in a request path, leaving URI-reserved and unreserved characters
// alone so pattern syntax survives.
func encodePath(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r > 0x7f || !isPathSafe(byte(r)) }) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x7f && isPathSafe(c) {
			b.WriteByte(c)
			continue
		}
		const upperhex = "0123456789ABCDEF"
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

// isPathSafe reports whether the byte appears unencoded in an escaped
// path: RFC 3986 unreserved, sub-delims, gen-delims, plus %.
func isPathSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '/', '?', '#', '[', ']', '@', '%':
		return true
	}
	return false
}

// unescapeCapture URL-decodes a captured path segment. Malformed escapes
// keep the raw capture.
func unescapeCapture(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}
