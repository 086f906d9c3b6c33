// Package routes defines the route model shared by the resolver, the content
// path generator and the static param aggregator, plus the namespace
// classifier that decides which content source backs a route.
package routes

import "strings"

// Route is an ordered sequence of URL path segments identifying a page.
// The empty route denotes the site root. Segments are opaque identifiers;
// only the classifier applies pattern checks to them.
type Route []string

// Parse splits a slash-separated path into a Route. Leading/trailing slashes
// and empty segments are dropped, so "/a//b/" parses the same as "a/b".
func Parse(path string) Route {
	parts := strings.Split(path, "/")
	route := make(Route, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			route = append(route, p)
		}
	}
	return route
}

// String joins the segments with slashes. The root route renders as "".
func (r Route) String() string {
	return strings.Join(r, "/")
}

// IsRoot reports whether the route denotes the site root.
func (r Route) IsRoot() bool { return len(r) == 0 }

// HasPrefix reports whether the route begins with the given segments.
func (r Route) HasPrefix(prefix ...string) bool {
	if len(r) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if r[i] != p {
			return false
		}
	}
	return true
}

// Contains reports whether any segment equals s.
func (r Route) Contains(s string) bool {
	for _, seg := range r {
		if seg == s {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the route.
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}
