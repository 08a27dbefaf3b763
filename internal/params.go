package internal

import (
	"net/http"
	"net/url"
)

// Reserved parameter keys written by the dispatcher.
const (
	// ParamSplat collects wildcard captures, one value per * in the
	// pattern, in path order.
	ParamSplat = "splat"

	// ParamCaptures collects positional captures of regexp and Matcher
	// routes, in group order.
	ParamCaptures = "captures"

	// ParamAgent collects the capture groups of a WithAgent guard.
	ParamAgent = "agent"
)

// Params is the request parameter bag: query-string and form values
// merged with the captures of the matched route. Route captures take
// precedence over query/form values on key collision. Multi-valued keys
// keep every value; Get returns the first.
type Params struct {
	values url.Values
}

// NewParams returns an empty parameter bag.
func NewParams() *Params {
	return &Params{values: url.Values{}}
}

// newRequestParams builds the base parameter bag for a request: URL query
// merged with the parsed form body. Body parse failures (non-form bodies)
// degrade to query-only values.
func newRequestParams(r *http.Request) *Params {
	_ = r.ParseForm()
	if len(r.Form) > 0 {
		return &Params{values: cloneValues(r.Form)}
	}
	return &Params{values: cloneValues(r.URL.Query())}
}

// Get returns the first value for name, or "" when absent.
func (p *Params) Get(name string) string {
	return p.values.Get(name)
}

// All returns every value for name in order. The returned slice is shared;
// callers must not mutate it.
func (p *Params) All(name string) []string {
	return p.values[name]
}

// Has reports whether name is present.
func (p *Params) Has(name string) bool {
	return p.values.Has(name)
}

// Set replaces the values of name with a single value.
func (p *Params) Set(name, value string) {
	p.values.Set(name, value)
}

// Add appends a value to name.
func (p *Params) Add(name, value string) {
	p.values.Add(name, value)
}

// Del removes name.
func (p *Params) Del(name string) {
	p.values.Del(name)
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	return len(p.values)
}

// Clone returns an independent copy. The dispatcher evaluates route
// guards against a clone and commits it only when the route is accepted,
// so guard side effects never leak into other candidates.
func (p *Params) Clone() *Params {
	return &Params{values: cloneValues(p.values)}
}

// Values exposes the underlying url.Values. Mutations are visible to the
// request.
func (p *Params) Values() url.Values {
	return p.values
}

// applyCaptures merges a matched route's captures on top of the bag.
// Named captures replace existing values, with every "splat" capture
// accumulated in order; anonymous captures accumulate under "captures".
func (p *Params) applyCaptures(names, captures []string) {
	if len(names) == 0 {
		if len(captures) == 0 {
			return
		}
		p.values.Del(ParamCaptures)
		for _, c := range captures {
			p.values.Add(ParamCaptures, unescapeCapture(c))
		}
		return
	}
	splatSeen := false
	for i, name := range names {
		if i >= len(captures) {
			break
		}
		v := unescapeCapture(captures[i])
		if name == ParamSplat {
			if !splatSeen {
				p.values.Del(ParamSplat)
				splatSeen = true
			}
			p.values.Add(ParamSplat, v)
			continue
		}
		p.values.Set(name, v)
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vv := range v {
		cp := make([]string, len(vv))
		copy(cp, vv)
		out[k] = cp
	}
	return out
}
