// Package contract declares the API surface: the table of supported routes,
// the typed shape of each route's input and output, and validation of raw
// payloads against those shapes. The registry is built once at startup and
// is read-only afterwards, so it is safe for concurrent lookups.
package contract

import (
	"fmt"
	"strings"
)

// Route binds one (method, path template) pair to its declared payload
// shapes. Path templates use ":name" segments for path parameters.
type Route struct {
	Name     string
	Method   string
	Template string

	Body     *Shape
	Params   *Shape
	Query    *Shape
	Response *Shape

	segments []string
}

// Params holds the values bound by ":name" segments during a lookup.
type Params map[string]string

// Registry is the static route table.
type Registry struct {
	routes []*Route
}

// NewRegistry builds a registry from the given routes and verifies each
// template parses. Duplicate (method, template) pairs are rejected.
func NewRegistry(routes ...*Route) (*Registry, error) {
	seen := make(map[string]struct{}, len(routes))
	for _, rt := range routes {
		if rt.Method == "" || !strings.HasPrefix(rt.Template, "/") {
			return nil, fmt.Errorf("%w: %s %q", ErrBadTemplate, rt.Method, rt.Template)
		}
		rt.segments = splitPath(rt.Template)
		names := make(map[string]struct{})
		for _, seg := range rt.segments {
			if !strings.HasPrefix(seg, ":") {
				continue
			}
			name := seg[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: empty parameter in %q", ErrBadTemplate, rt.Template)
			}
			if _, dup := names[name]; dup {
				return nil, fmt.Errorf("%w: duplicate parameter %q in %q", ErrBadTemplate, name, rt.Template)
			}
			names[name] = struct{}{}
		}
		key := rt.Method + " " + rt.Template
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate route %s", ErrBadTemplate, key)
		}
		seen[key] = struct{}{}
	}
	return &Registry{routes: routes}, nil
}

// Lookup finds the route matching the given method and concrete path and
// binds its path parameters. Literal segments must match exactly; ":name"
// segments bind the corresponding path value.
func (r *Registry) Lookup(method, path string) (*Route, Params, error) {
	segs := splitPath(path)
	for _, rt := range r.routes {
		if rt.Method != method {
			continue
		}
		params, ok := matchSegments(rt.segments, segs)
		if !ok {
			continue
		}
		return rt, params, nil
	}
	return nil, nil, fmt.Errorf("%w: %s %s", ErrRouteNotFound, method, path)
}

// Routes returns the registered routes for static iteration, e.g. the
// startup cross-check against the security policy.
func (r *Registry) Routes() []*Route {
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// DescribeResponse reports the declared response shape of a route so a
// handler can confirm conformance before sending.
func (r *Registry) DescribeResponse(rt *Route) *Shape {
	return rt.Response
}

func matchSegments(template, path []string) (Params, bool) {
	if len(template) != len(path) {
		return nil, false
	}
	var params Params
	for i, seg := range template {
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(Params, 2)
			}
			params[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
