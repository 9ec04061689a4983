package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/model"
)

var (
	ErrBadPattern    = errors.New("guard: bad route pattern")
	ErrShadowedRoute = errors.New("guard: route is unreachable")
)

type Access int

const (
	Public Access = iota
	ProtectedAccess
	PublicOnlyAccess
)

// Route is one page. Pattern segments starting with ':' capture a path
// parameter; a final "*" matches any remainder.
type Route struct {
	Pattern string
	Access  Access
	Roles   []model.Role
	Handler http.Handler
}

// Evaluate applies the route's guard to s.
func (r Route) Evaluate(s auth.Snapshot) Decision {
	switch r.Access {
	case ProtectedAccess:
		return Protected(s, r.Roles...)
	case PublicOnlyAccess:
		return PublicOnly(s)
	}
	return Decision{Kind: Render}
}

type compiled struct {
	Route
	segs     []string
	catchAll bool
}

// Table matches paths against routes in declaration order. The first match
// wins, so a literal path must be declared before a parameterised sibling
// that would also match it; NewTable refuses tables where that is not so.
type Table struct {
	routes []compiled
}

func NewTable(routes ...Route) (*Table, error) {
	t := &Table{}
	for _, r := range routes {
		c, err := compile(r)
		if err != nil {
			return nil, err
		}
		literal := split(r.Pattern)
		for _, prev := range t.routes {
			if prev.match(literal, nil) {
				return nil, fmt.Errorf("%w: %q is shadowed by %q", ErrShadowedRoute, r.Pattern, prev.Pattern)
			}
		}
		t.routes = append(t.routes, c)
	}
	return t, nil
}

func compile(r Route) (compiled, error) {
	if r.Pattern == "*" {
		return compiled{Route: r, catchAll: true}, nil
	}
	if !strings.HasPrefix(r.Pattern, "/") {
		return compiled{}, fmt.Errorf("%w: %q must start with /", ErrBadPattern, r.Pattern)
	}

	c := compiled{Route: r, segs: split(r.Pattern)}
	for i, s := range c.segs {
		switch {
		case s == "*" && i == len(c.segs)-1:
			c.catchAll = true
			c.segs = c.segs[:i]
		case s == "*", s == ":":
			return compiled{}, fmt.Errorf("%w: %q", ErrBadPattern, r.Pattern)
		}
	}
	return c, nil
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (c compiled) match(segs []string, params map[string]string) bool {
	if len(segs) < len(c.segs) || (!c.catchAll && len(segs) != len(c.segs)) {
		return false
	}
	for i, s := range c.segs {
		if strings.HasPrefix(s, ":") {
			if params != nil {
				params[s[1:]] = segs[i]
			}
			continue
		}
		if s != segs[i] {
			return false
		}
	}
	return true
}

// Match returns the first declared route matching path and its parameters.
func (t *Table) Match(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, c := range t.routes {
		params := map[string]string{}
		if c.match(segs, params) {
			return c.Route, params, true
		}
	}
	return Route{}, nil, false
}

func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, c := range t.routes {
		out[i] = c.Route
	}
	return out
}

type paramsKey struct{}

// Param returns the named path parameter of the route being served.
func Param(ctx context.Context, name string) string {
	params, _ := ctx.Value(paramsKey{}).(map[string]string)
	return params[name]
}

func withParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}
