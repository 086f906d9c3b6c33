package contentpath

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/routes"
)

// Source is the raw backing file located for a route.
type Source struct {
	// Path is the filesystem path the content was read from.
	Path string
	// Content is the raw file content. Empty when no source exists.
	Content []byte
}

// Found reports whether a backing file was located.
func (s Source) Found() bool { return s.Path != "" }

// Loader probes generated candidate paths and reads the first existing file.
// A missing source is a normal outcome, not an error: consumers must treat an
// empty Source as "no source available".
type Loader struct {
	generators []*Generator
	rec        metrics.Recorder
}

// NewLoader creates a loader over one or more content roots, probed in order.
// The metrics recorder may be nil.
func NewLoader(rec metrics.Recorder, generators ...*Generator) *Loader {
	if rec == nil {
		rec = metrics.Noop()
	}
	return &Loader{generators: generators, rec: rec}
}

// Load returns the raw source for the route, or an empty Source when none of
// the candidates exist. API-reference routes are skipped entirely: their
// content is mechanically generated and has no hand-authored backing file.
//
// Probe failures (permission errors, races with content syncs) are treated as
// negative results; the candidate loop always terminates after the fixed-size
// candidate list.
func (l *Loader) Load(ctx context.Context, route routes.Route) Source {
	if routes.Classify(route) == routes.NamespaceAPIReference {
		l.rec.IncSourceLookup(metrics.SourceSkipped)
		return Source{}
	}

	for _, gen := range l.generators {
		for _, candidate := range gen.Candidates(route) {
			if err := ctx.Err(); err != nil {
				return Source{}
			}
			content, err := os.ReadFile(candidate)
			if err != nil {
				if !os.IsNotExist(err) {
					slog.Debug("Candidate path unreadable",
						logfields.Candidate(candidate),
						logfields.Error(err))
				}
				continue
			}
			l.rec.IncSourceLookup(metrics.SourceFound)
			return Source{Path: candidate, Content: content}
		}
	}

	l.rec.IncSourceLookup(metrics.SourceMissing)
	slog.Debug("No backing source file for route", logfields.Route(route.String()))
	return Source{}
}
