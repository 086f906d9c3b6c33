package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/contentpath"
	"git.home.luguber.info/inful/docsite/internal/daemon"
	"git.home.luguber.info/inful/docsite/internal/hrefs"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/pageindex"
	"git.home.luguber.info/inful/docsite/internal/params"
	"git.home.luguber.info/inful/docsite/internal/routes"
	"git.home.luguber.info/inful/docsite/internal/server"
)

// app bundles the wired components shared by the commands.
type app struct {
	cfg        *config.Config
	registry   *prometheus.Registry
	rec        metrics.Recorder
	scanner    *pageindex.Scanner
	holder     *server.IndexHolder
	resolver   *hrefs.Resolver
	loader     *contentpath.Loader
	aggregator *params.Aggregator
}

// buildApp wires the shared components. A non-nil seed index is served as-is
// (warm start); otherwise the content trees are scanned.
func buildApp(ctx context.Context, cfg *config.Config, seed *pageindex.Index) (*app, error) {
	registry := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(registry)

	scanner := pageindex.NewScanner(cfg.Content.BaseURL, cfg.Content.DefaultLocale,
		pageindex.Root{Dir: cfg.Content.Dir},
		pageindex.Root{Dir: cfg.Content.ReportsDir, RoutePrefix: routes.ReportPrefix.Clone()},
	)

	ix := seed
	if ix == nil {
		var err error
		ix, err = scanner.Build(ctx)
		if err != nil {
			return nil, err
		}
	}
	holder := server.NewIndexHolder(ix)

	return &app{
		cfg:      cfg,
		registry: registry,
		rec:      rec,
		scanner:  scanner,
		holder:   holder,
		resolver: hrefs.NewResolver(holder, rec),
		loader: contentpath.NewLoader(rec,
			contentpath.NewGenerator(cfg.Content.Dir),
			contentpath.NewGenerator(cfg.Content.ReportsDir)),
		aggregator: params.NewAggregator(rec,
			params.DirectorySource(cfg.Content.Dir, nil),
			params.DirectorySource(cfg.Content.ReportsDir, routes.ReportPrefix.Clone()),
			params.SchemaSource(cfg.Content.APISpecPath)),
	}, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// warmStartIndex loads the persisted page index so serve can answer requests
// before the first scan completes. Returns nil when the store is empty or
// unreadable; the caller then scans in the foreground as usual.
func warmStartIndex(ctx context.Context, store *pageindex.Store, fallbackLocale string) *pageindex.Index {
	persisted, err := store.Load(ctx, fallbackLocale)
	if err != nil {
		slog.Warn("Failed to load persisted index", "error", err)
		return nil
	}
	if persisted.Len() == 0 {
		return nil
	}
	slog.Info("Warm-started page index from store", "pages", persisted.Len())
	return persisted
}

func runServe(cfg *config.Config) error {
	ctx, stop := signalContext()
	defer stop()

	var store *pageindex.Store
	var seed *pageindex.Index
	if cfg.Index.DBPath != "" {
		var err error
		store, err = pageindex.OpenStore(cfg.Index.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		seed = warmStartIndex(ctx, store, cfg.Content.DefaultLocale)
	}

	a, err := buildApp(ctx, cfg, seed)
	if err != nil {
		return err
	}
	if store != nil && seed == nil {
		if err := store.Save(ctx, a.holder.Get()); err != nil {
			slog.Warn("Failed to persist initial index", "error", err)
		}
	}

	var auditor *audit.Service
	if cfg.Audit.Enabled {
		publisher, err := audit.NewNATSPublisher(cfg.Audit.NATSURL, cfg.Audit.Subject)
		if err != nil {
			return err
		}
		defer publisher.Close()
		auditor = audit.NewService(a.resolver, publisher, a.rec)
	}

	watcher, err := daemon.NewContentWatcher(cfg.Refresh.Debounce,
		cfg.Content.Dir, cfg.Content.ReportsDir)
	if err != nil {
		return err
	}

	d, err := daemon.New(a.scanner, a.holder, watcher, daemon.Options{
		Store:           store,
		Auditor:         auditor,
		RefreshInterval: cfg.Refresh.Interval,
	})
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, a.holder, a.resolver, a.loader, a.aggregator, a.registry)

	g, gctx := errgroup.WithContext(ctx)
	if seed != nil {
		// The warm-start index may be stale; replace it with a fresh scan
		// while the server is already answering.
		g.Go(func() error {
			if err := d.Rebuild(gctx); err != nil {
				slog.Warn("Background index rebuild failed", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error { return d.Run(gctx) })
	return g.Wait()
}

func runRoutes(cfg *config.Config, asJSON bool) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}

	list, err := a.aggregator.EnumerateRoutes(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		out := make([]string, len(list))
		for i, r := range list {
			out[i] = r.String()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, r := range list {
		fmt.Println("/" + r.String())
	}
	return nil
}

func runResolve(cfg *config.Config, href, dir, locale string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}

	resolved := a.resolver.Resolve(href, hrefs.ResolveContext{Dir: dir, Locale: locale})
	fmt.Println(resolved)
	return nil
}

func runClassify(routePath string) error {
	route := routes.Parse(routePath)
	fmt.Println(routes.Classify(route))
	return nil
}

func runSource(cfg *config.Config, routePath string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}

	src := a.loader.Load(ctx, routes.Parse(routePath))
	if !src.Found() {
		slog.Info("No backing source for route", "route", routePath)
		return nil
	}
	_, err = os.Stdout.Write(src.Content)
	return err
}

func runAudit(cfg *config.Config, publish bool) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}

	var publisher audit.Publisher
	if publish {
		if !cfg.Audit.Enabled {
			return fmt.Errorf("audit publishing requested but audit.nats_url is not configured")
		}
		natsPublisher, err := audit.NewNATSPublisher(cfg.Audit.NATSURL, cfg.Audit.Subject)
		if err != nil {
			return err
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	report, err := audit.NewService(a.resolver, publisher, a.rec).Run(ctx, a.holder.Get())
	if err != nil {
		return err
	}

	for _, finding := range report.Findings {
		fmt.Printf("%s: %s (%s)\n", finding.Page.ContentPath, finding.Href, finding.Kind)
	}
	if len(report.Findings) > 0 {
		return fmt.Errorf("%d unresolved links", len(report.Findings))
	}
	return nil
}

func runIndex(cfg *config.Config) error {
	if cfg.Index.DBPath == "" {
		return fmt.Errorf("index.db_path is not configured")
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}

	store, err := pageindex.OpenStore(cfg.Index.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Save(ctx, a.holder.Get()); err != nil {
		return err
	}
	slog.Info("Page index persisted",
		"pages", a.holder.Get().Len(),
		"db", cfg.Index.DBPath)
	return nil
}
