package internal

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/aria/pkg/hostrouter"
)

// RouteOption attaches per-route behavior at registration time.
type RouteOption func(*route)

// WithCondition attaches guard conditions to the route, evaluated in
// order after any conditions staged with Router.Condition.
func WithCondition(conds ...Condition) RouteOption {
	return func(rt *route) {
		for _, cond := range conds {
			if cond != nil {
				rt.conditions = append(rt.conditions, cond)
			}
		}
	}
}

// WithHost guards the route to requests for the given host. A leading
// "*." label matches any subdomain, the same patterns hostrouter accepts:
//
//	aria.WithHost("api.example.com")
//	aria.WithHost("*.example.com")
func WithHost(pattern string) RouteOption {
	return WithCondition(func(c Context) (bool, error) {
		return hostrouter.Match(pattern, c.Host()), nil
	})
}

// WithHostMatch guards the route with a host regexp.
func WithHostMatch(rx *regexp.Regexp) RouteOption {
	return WithCondition(func(c Context) (bool, error) {
		return rx.MatchString(c.Host()), nil
	})
}

// WithAgent guards the route with a User-Agent regexp. On acceptance the
// expression's capture groups are recorded under the "agent" parameter,
// one value per group; the side effect is discarded with the route if a
// later guard rejects it.
func WithAgent(rx *regexp.Regexp) RouteOption {
	return WithCondition(func(c Context) (bool, error) {
		m := rx.FindStringSubmatch(c.Request().UserAgent())
		if m == nil {
			return false, nil
		}
		params := c.Params()
		params.Del(ParamAgent)
		for _, group := range m[1:] {
			params.Add(ParamAgent, group)
		}
		return true, nil
	})
}

// WithProvides guards the route to requests whose Accept header admits
// one of the given media types and sets Content-Type to the first match.
// An absent Accept header admits everything.
func WithProvides(types ...string) RouteOption {
	return WithCondition(func(c Context) (bool, error) {
		accept := c.Request().Header.Get("Accept")
		for _, t := range types {
			if acceptsMediaType(accept, t) {
				c.ContentType(t)
				return true, nil
			}
		}
		return false, nil
	})
}

func acceptsMediaType(accept, mediaType string) bool {
	if accept == "" {
		return true
	}
	want := strings.ToLower(strings.TrimSpace(mediaType))
	wantMajor, _, _ := strings.Cut(want, "/")
	for _, part := range strings.Split(accept, ",") {
		media, _, _ := strings.Cut(part, ";")
		media = strings.ToLower(strings.TrimSpace(media))
		switch media {
		case "*/*", want, wantMajor + "/*":
			return true
		}
	}
	return false
}

// evalConditions runs a route's guards in order, rejecting on the first
// false. Errors (including pass signals) propagate to the route scan.
func (a *App) evalConditions(c *requestContext, conds []Condition) (bool, error) {
	for _, cond := range conds {
		ok, err := cond(c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
