// Package audit walks the page index and reports relative links that do not
// resolve to any indexed page.
package audit

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/hrefs"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/pageindex"
)

// Finding is one unresolved relative link on one page.
type Finding struct {
	Page pageindex.Page
	Href string
	Kind markdown.LinkKind
}

// Report summarizes one audit run.
type Report struct {
	AuditID      string
	StartedAt    time.Time
	Duration     time.Duration
	PagesScanned int
	PagesSkipped int
	Findings     []Finding
}

// Service audits all indexed pages for unresolved links. Pages whose content
// fingerprint has not changed since the previous run are skipped.
type Service struct {
	resolver  *hrefs.Resolver
	publisher Publisher
	rec       metrics.Recorder

	mu      sync.Mutex
	audited map[string]string
}

// NewService creates an audit service. publisher and rec may be nil.
func NewService(resolver *hrefs.Resolver, publisher Publisher, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Noop()
	}
	return &Service{
		resolver:  resolver,
		publisher: publisher,
		rec:       rec,
		audited:   make(map[string]string),
	}
}

// Run audits every page in the index and returns the report. Unreadable
// pages are skipped; individual publish failures are logged but do not abort
// the run.
func (s *Service) Run(ctx context.Context, ix *pageindex.Index) (*Report, error) {
	report := &Report{
		AuditID:   uuid.NewString(),
		StartedAt: time.Now(),
	}

	for _, page := range ix.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if page.FilePath == "" {
			continue
		}
		if s.alreadyAudited(page) {
			report.PagesSkipped++
			continue
		}

		findings := s.auditPage(ctx, report.AuditID, page)
		report.PagesScanned++
		report.Findings = append(report.Findings, findings...)
		s.markAudited(page)
	}

	report.Duration = time.Since(report.StartedAt)
	slog.Info("Link audit complete",
		slog.String("audit_id", report.AuditID),
		slog.Int("pages", report.PagesScanned),
		slog.Int("skipped", report.PagesSkipped),
		slog.Int("unresolved", len(report.Findings)),
		logfields.DurationMS(report.Duration))
	return report, nil
}

// Reset clears the fingerprint cache so the next run audits every page.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audited = make(map[string]string)
}

func (s *Service) auditPage(ctx context.Context, auditID string, page pageindex.Page) []Finding {
	content, err := os.ReadFile(page.FilePath)
	if err != nil {
		slog.Warn("Cannot read page for audit", logfields.Path(page.FilePath), logfields.Error(err))
		return nil
	}
	_, body := markdown.SplitFrontmatter(content)

	rctx := hrefs.ResolveContext{Dir: page.Dir, Locale: page.Locale}

	var findings []Finding
	seen := make(map[string]struct{})
	for _, link := range markdown.ExtractLinks([]byte(body)) {
		href := link.Destination
		if !hrefs.IsRelative(href) {
			continue
		}
		if _, dup := seen[href]; dup {
			continue
		}
		seen[href] = struct{}{}

		// A relative href the resolver hands back unchanged has no matching
		// page in the index.
		if s.resolver.Resolve(href, rctx) != href {
			continue
		}

		findings = append(findings, Finding{Page: page, Href: href, Kind: link.Kind})
		s.rec.IncAuditUnresolved(1)

		if s.publisher != nil {
			event := &UnresolvedLinkEvent{
				AuditID:     auditID,
				Href:        href,
				Kind:        link.Kind,
				ContentPath: page.ContentPath,
				FilePath:    page.FilePath,
				Dir:         page.Dir,
				Locale:      page.Locale,
				Title:       page.Title,
				PageURL:     page.URL,
			}
			if err := s.publisher.Publish(ctx, event); err != nil {
				slog.Warn("Failed to publish audit event", logfields.Href(href), logfields.Error(err))
			}
		}
	}
	return findings
}

func (s *Service) alreadyAudited(page pageindex.Page) bool {
	if page.Fingerprint == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audited[auditKey(page)] == page.Fingerprint
}

func (s *Service) markAudited(page pageindex.Page) {
	if page.Fingerprint == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audited[auditKey(page)] = page.Fingerprint
}

func auditKey(page pageindex.Page) string {
	return page.Locale + "\x00" + page.ContentPath
}
