// Package daemon keeps the page index fresh while the server runs: content
// changes trigger debounced rebuilds, and a periodic schedule re-runs the
// link audit.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/pageindex"
	"git.home.luguber.info/inful/docsite/internal/server"
)

// Daemon coordinates index rebuilds and periodic audits.
type Daemon struct {
	scanner *pageindex.Scanner
	holder  *server.IndexHolder
	store   *pageindex.Store
	auditor *audit.Service
	watcher *ContentWatcher

	refreshInterval time.Duration
	scheduler       gocron.Scheduler
}

// Options configures optional daemon collaborators.
type Options struct {
	// Store, when set, persists every rebuilt index.
	Store *pageindex.Store
	// Auditor, when set, runs after each rebuild and on the refresh schedule.
	Auditor *audit.Service
	// RefreshInterval between scheduled audit runs; zero disables the schedule.
	RefreshInterval time.Duration
}

// New creates a daemon around the scanner and index holder.
func New(scanner *pageindex.Scanner, holder *server.IndexHolder, watcher *ContentWatcher, opts Options) (*Daemon, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Daemon{
		scanner:         scanner,
		holder:          holder,
		store:           opts.Store,
		auditor:         opts.Auditor,
		watcher:         watcher,
		refreshInterval: opts.RefreshInterval,
		scheduler:       scheduler,
	}, nil
}

// Rebuild scans the content trees, swaps the fresh index in and persists it.
func (d *Daemon) Rebuild(ctx context.Context) error {
	ix, err := d.scanner.Build(ctx)
	if err != nil {
		return fmt.Errorf("rebuild page index: %w", err)
	}
	d.holder.Set(ix)

	if d.store != nil {
		if err := d.store.Save(ctx, ix); err != nil {
			slog.Warn("Failed to persist rebuilt index", logfields.Error(err))
		}
	}
	return nil
}

// Run blocks until ctx is cancelled, rebuilding on content changes and
// auditing on the refresh schedule.
func (d *Daemon) Run(ctx context.Context) error {
	if d.watcher != nil {
		if err := d.watcher.Start(ctx); err != nil {
			return fmt.Errorf("start content watcher: %w", err)
		}
		defer func() { _ = d.watcher.Close() }()
	}

	if d.auditor != nil && d.refreshInterval > 0 {
		_, err := d.scheduler.NewJob(
			gocron.DurationJob(d.refreshInterval),
			gocron.NewTask(d.runAudit, ctx),
			gocron.WithName("link-audit"),
		)
		if err != nil {
			return fmt.Errorf("schedule link audit: %w", err)
		}
		d.scheduler.Start()
		defer func() {
			if err := d.scheduler.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.changes():
			slog.Info("Content changed, rebuilding page index")
			if err := d.Rebuild(ctx); err != nil {
				slog.Error("Index rebuild failed", logfields.Error(err))
				continue
			}
			d.runAudit(ctx)
		}
	}
}

func (d *Daemon) changes() <-chan struct{} {
	if d.watcher == nil {
		return nil
	}
	return d.watcher.Changes()
}

func (d *Daemon) runAudit(ctx context.Context) {
	if d.auditor == nil {
		return
	}
	if _, err := d.auditor.Run(ctx, d.holder.Get()); err != nil {
		slog.Warn("Link audit failed", logfields.Error(err))
	}
}
