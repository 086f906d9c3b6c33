// Package params enumerates the full set of pre-renderable routes by merging
// independently produced route lists from the content trees and the API
// specification.
package params

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/routes"
)

// Source produces one route list. Sources must degrade to a usable list on
// their own; an error aborts the whole enumeration.
type Source func(ctx context.Context) ([]routes.Route, error)

// Aggregator merges routes from all configured sources.
type Aggregator struct {
	sources []Source
	rec     metrics.Recorder
}

// NewAggregator creates an aggregator over the given sources. rec may be nil.
func NewAggregator(rec metrics.Recorder, sources ...Source) *Aggregator {
	if rec == nil {
		rec = metrics.Noop()
	}
	return &Aggregator{sources: sources, rec: rec}
}

// EnumerateRoutes runs every source and returns the deduplicated merge.
// Malformed entries (empty segments) are dropped, never reported as errors.
// Order is deterministic: sources in registration order, first occurrence
// wins on duplicates.
func (a *Aggregator) EnumerateRoutes(ctx context.Context) ([]routes.Route, error) {
	start := time.Now()

	seen := make(map[string]struct{})
	var merged []routes.Route
	for _, source := range a.sources {
		list, err := source(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			if !wellFormed(r) {
				slog.Debug("Dropping malformed route entry", logfields.Route(r.String()))
				continue
			}
			key := r.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, r.Clone())
		}
	}

	a.rec.ObserveEnumerationDuration(time.Since(start))
	a.rec.SetEnumeratedRoutes(len(merged))
	slog.Info("Route enumeration complete",
		slog.Int("routes", len(merged)),
		slog.Int("sources", len(a.sources)))
	return merged, nil
}

// wellFormed rejects entries with empty or slash-bearing segments. The empty
// route is valid; it denotes the site root.
func wellFormed(r routes.Route) bool {
	for _, seg := range r {
		if seg == "" || strings.Contains(seg, "/") {
			return false
		}
	}
	return true
}

// DirectorySource enumerates routes from one content tree, prepending prefix
// to each. Marker folders, locale suffixes and file extensions are invisible
// in the produced routes, matching the page index's route derivation. A
// missing directory yields an empty list.
func DirectorySource(dir string, prefix routes.Route) Source {
	return func(ctx context.Context) ([]routes.Route, error) {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Warn("Route source directory not found, skipping", logfields.Path(dir))
			return nil, nil
		}

		seen := make(map[string]struct{})
		var out []routes.Route
		err := filepath.WalkDir(dir, func(fullPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && fullPath != dir {
					return fs.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			ext := filepath.Ext(d.Name())
			if ext != ".mdx" && ext != ".md" {
				return nil
			}

			rel, err := filepath.Rel(dir, fullPath)
			if err != nil {
				return err
			}
			r := routeForFile(filepath.ToSlash(rel), prefix)
			key := r.String()
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				out = append(out, r)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
		return out, nil
	}
}

// routeForFile derives the route for one content file path relative to its
// root. Mirrors the page index scanner's derivation.
func routeForFile(rel string, prefix routes.Route) routes.Route {
	segments := strings.Split(rel, "/")

	logical := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == markerSegment {
			continue
		}
		logical = append(logical, seg)
	}

	r := prefix.Clone()
	if len(logical) == 0 {
		return r
	}

	name := logical[len(logical)-1]
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// Drop a trailing locale suffix like "setup.fr".
	if i := strings.LastIndexByte(base, '.'); i >= 0 && isLocaleSuffix(base[i+1:]) {
		base = base[:i]
	}

	r = append(r, logical[:len(logical)-1]...)
	if base != "index" {
		r = append(r, base)
	}
	return r
}

const markerSegment = "(docs)"

func isLocaleSuffix(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
}

// SchemaSource enumerates schema routes from the API specification at
// specPath, degrading to the static fallback list when the document cannot
// be read or parsed.
func SchemaSource(specPath string) Source {
	return func(ctx context.Context) ([]routes.Route, error) {
		list, err := SchemaRoutes(specPath)
		if err != nil {
			slog.Warn("API specification unavailable, using static schema routes",
				logfields.Path(specPath), logfields.Error(err))
			return FallbackSchemaRoutes(), nil
		}
		return list, nil
	}
}

// StaticSource returns a fixed route list, useful for always-present routes
// like the site root.
func StaticSource(list ...routes.Route) Source {
	return func(ctx context.Context) ([]routes.Route, error) {
		return list, nil
	}
}
