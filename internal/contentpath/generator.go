// Package contentpath locates the backing source file for a route. Content is
// mirrored from independently evolving upstream sources with different
// directory conventions (flat files, directory indexes, grouped under a
// "(docs)" marker folder), so the generator produces an ordered candidate
// list instead of assuming one layout.
package contentpath

import (
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/routes"
)

// markerSegment is the route-group folder some upstream mirrors nest their
// pages under. It never appears in routes, only on disk.
const markerSegment = "(docs)"

// maxMarkerDepth bounds marker injection to the first two segment boundaries,
// matching observed content conventions.
const maxMarkerDepth = 2

// Strategy is one directory-naming convention: a pure function from route to
// candidate paths relative to the content root. Strategies compose by
// concatenation, so adding a convention is a one-line change.
type Strategy func(route routes.Route) []string

// Generator produces ordered candidate filesystem paths for a route under a
// single content root. First match wins; order encodes priority (more
// specific convention first).
type Generator struct {
	root       string
	strategies []Strategy
}

// NewGenerator creates a generator over the given content root with the
// default convention strategies.
func NewGenerator(root string) *Generator {
	return &Generator{
		root: root,
		strategies: []Strategy{
			directFile,
			directoryIndex,
			markerInjected,
			rootIndex,
		},
	}
}

// Root returns the content root this generator resolves under.
func (g *Generator) Root() string { return g.root }

// Candidates returns the ordered list of filesystem paths to try for the
// route. Existence checking is the caller's concern; this is pure.
func (g *Generator) Candidates(route routes.Route) []string {
	var out []string
	for _, strategy := range g.strategies {
		for _, rel := range strategy(route) {
			out = append(out, filepath.Join(g.root, filepath.FromSlash(rel)))
		}
	}
	return out
}

// directFile tries "<route>.mdx".
func directFile(route routes.Route) []string {
	if route.IsRoot() {
		return nil
	}
	return []string{route.String() + ".mdx"}
}

// directoryIndex tries "<route>/index.mdx".
func directoryIndex(route routes.Route) []string {
	if route.IsRoot() {
		return nil
	}
	return []string{route.String() + "/index.mdx"}
}

// markerInjected tries the route with the marker folder inserted after the
// first one and two segments, each as direct file then directory index.
func markerInjected(route routes.Route) []string {
	var out []string
	for i := 1; i <= len(route) && i <= maxMarkerDepth; i++ {
		variant := make(routes.Route, 0, len(route)+1)
		variant = append(variant, route[:i]...)
		variant = append(variant, markerSegment)
		variant = append(variant, route[i:]...)
		out = append(out, variant.String()+".mdx", variant.String()+"/index.mdx")
	}
	return out
}

// rootIndex is the final fallback for the site root.
func rootIndex(route routes.Route) []string {
	if !route.IsRoot() {
		return nil
	}
	return []string{"index.mdx"}
}
