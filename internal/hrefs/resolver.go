package hrefs

import (
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// PageIndex is the slug->page lookup capability the resolver consumes.
// Implementations must be deterministic for constant inputs and always return
// within bounded time; absence of a match is an ordinary outcome.
type PageIndex interface {
	// Lookup resolves a candidate content path relative to dir for the given
	// locale and returns the page's canonical URL.
	Lookup(candidate, dir, locale string) (url string, ok bool)
}

// ResolveContext carries the addressing context of the page whose links are
// being resolved.
type ResolveContext struct {
	// Dir is the content directory of the current page, e.g. "Infra/guides".
	Dir string
	// Locale of the current page; empty means the site default.
	Locale string
}

// schemeRe matches URI-scheme prefixes (https:, mailto:, tel:, ...).
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsRelative reports whether href is a relative internal link the resolver
// would attempt to rewrite. Site-absolute, fragment-only and scheme-prefixed
// hrefs are not relative.
func IsRelative(href string) bool {
	return href != "" &&
		!strings.HasPrefix(href, "/") &&
		!strings.HasPrefix(href, "#") &&
		!schemeRe.MatchString(href)
}

// Resolver rewrites relative internal hrefs to canonical page URLs.
// It is stateless aside from its injected collaborators and safe for
// concurrent use.
type Resolver struct {
	index PageIndex
	rec   metrics.Recorder
}

// NewResolver creates a resolver bound to the given page index.
// The metrics recorder may be nil.
func NewResolver(index PageIndex, rec metrics.Recorder) *Resolver {
	if rec == nil {
		rec = metrics.Noop()
	}
	return &Resolver{index: index, rec: rec}
}

// Resolve turns a possibly-ambiguous relative href into a canonical URL,
// preserving any query string and fragment unchanged.
//
// Site-absolute ("/..."), fragment-only ("#...") and scheme-prefixed hrefs are
// returned untouched: the resolver only rewrites relative internal links.
// When no candidate resolves, the original href is returned unchanged rather
// than a confident-but-wrong rewrite, which also makes resolution idempotent.
func (r *Resolver) Resolve(href string, ctx ResolveContext) string {
	if !IsRelative(href) {
		return href
	}

	path, suffix := splitSuffix(href)
	if path == "" {
		return href
	}

	// Make relativity explicit so index lookups are unambiguous about it.
	if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") {
		path = "./" + path
	}

	candidates := BuildCandidates(path)
	for i, candidate := range candidates {
		if url, ok := r.index.Lookup(candidate, ctx.Dir, ctx.Locale); ok {
			r.rec.IncResolution(metrics.ResolutionResolved)
			r.rec.ObserveCandidateProbes(i + 1)
			slog.Debug("Resolved relative href",
				logfields.Href(href),
				logfields.Candidate(candidate),
				logfields.Page(url))
			return url + suffix
		}
	}

	r.rec.IncResolution(metrics.ResolutionFallback)
	r.rec.ObserveCandidateProbes(len(candidates))
	return href
}

// Rewriter returns the resolver as a per-link transform for a fixed context,
// in the shape the rendering host consumes.
func (r *Resolver) Rewriter(ctx ResolveContext) func(string) string {
	return func(href string) string { return r.Resolve(href, ctx) }
}

// splitSuffix separates the path portion of an href from its query/fragment
// suffix. The suffix is carried through resolution unchanged.
func splitSuffix(href string) (path, suffix string) {
	path = href
	if i := strings.IndexByte(path, '#'); i >= 0 {
		suffix = path[i:]
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		suffix = path[i:] + suffix
		path = path[:i]
	}
	return path, suffix
}
