// Package pageindex maintains the slug->page lookup the href resolver and the
// link audit consume. The index is immutable once built; rebuilds produce a
// fresh Index and callers swap the pointer.
package pageindex

import (
	"path"
	"sort"
	"strings"
)

// Page is one addressable content page.
type Page struct {
	// ContentPath is the logical slash path of the page relative to its
	// content root, with marker folders and locale suffixes stripped but the
	// real file extension kept, e.g. "Infra/setup.mdx".
	ContentPath string
	// URL is the canonical site URL of the page, e.g. "/Infra/setup".
	URL string
	// Dir is the directory portion of ContentPath, e.g. "Infra".
	Dir string
	// Locale is the canonical language tag of the page.
	Locale string
	// Title from frontmatter, best effort.
	Title string
	// Fingerprint of the raw content, used for change detection.
	Fingerprint string
	// FilePath is where the backing file lives on disk.
	FilePath string
}

// Index is an immutable lookup table of pages keyed by locale and logical
// content path. Safe for concurrent reads.
type Index struct {
	defaultLocale string
	pages         map[string]map[string]Page
}

// NewIndex builds an index over the given pages. Pages without a locale are
// filed under the default locale. Duplicate paths keep the first page seen.
func NewIndex(defaultLocale string, pages []Page) *Index {
	ix := &Index{
		defaultLocale: defaultLocale,
		pages:         make(map[string]map[string]Page),
	}
	for _, p := range pages {
		locale := p.Locale
		if locale == "" {
			locale = defaultLocale
		}
		byPath := ix.pages[locale]
		if byPath == nil {
			byPath = make(map[string]Page)
			ix.pages[locale] = byPath
		}
		if _, exists := byPath[p.ContentPath]; !exists {
			byPath[p.ContentPath] = p
		}
	}
	return ix
}

// Lookup resolves a candidate path relative to dir for the given locale and
// returns the page's canonical URL. It falls back to the default locale when
// the requested locale has no match. Implements the resolver's PageIndex.
func (ix *Index) Lookup(candidate, dir, locale string) (string, bool) {
	joined := path.Join(dir, candidate)
	if joined == "" || strings.HasPrefix(joined, "..") {
		return "", false
	}

	if locale == "" {
		locale = ix.defaultLocale
	}
	if p, ok := ix.pages[locale][joined]; ok {
		return p.URL, true
	}
	if locale != ix.defaultLocale {
		if p, ok := ix.pages[ix.defaultLocale][joined]; ok {
			return p.URL, true
		}
	}
	return "", false
}

// Get returns the page for an exact logical content path in the given locale.
func (ix *Index) Get(contentPath, locale string) (Page, bool) {
	if locale == "" {
		locale = ix.defaultLocale
	}
	p, ok := ix.pages[locale][contentPath]
	return p, ok
}

// Pages returns all indexed pages in deterministic order.
func (ix *Index) Pages() []Page {
	var out []Page
	for _, byPath := range ix.pages {
		for _, p := range byPath {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Locale != out[j].Locale {
			return out[i].Locale < out[j].Locale
		}
		return out[i].ContentPath < out[j].ContentPath
	})
	return out
}

// Len returns the number of indexed pages across all locales.
func (ix *Index) Len() int {
	n := 0
	for _, byPath := range ix.pages {
		n += len(byPath)
	}
	return n
}

// DefaultLocale returns the locale pages without an explicit tag are filed under.
func (ix *Index) DefaultLocale() string { return ix.defaultLocale }
