// Package server exposes href resolution, route classification, raw-source
// lookup and route enumeration over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/contentpath"
	"git.home.luguber.info/inful/docsite/internal/hrefs"
	"git.home.luguber.info/inful/docsite/internal/pageindex"
	"git.home.luguber.info/inful/docsite/internal/params"
)

// IndexHolder hands out the current page index and accepts rebuilt ones.
// Swaps are atomic; readers always see a complete index.
type IndexHolder struct {
	current atomic.Pointer[pageindex.Index]
}

// NewIndexHolder creates a holder seeded with ix.
func NewIndexHolder(ix *pageindex.Index) *IndexHolder {
	h := &IndexHolder{}
	h.current.Store(ix)
	return h
}

// Get returns the current index.
func (h *IndexHolder) Get() *pageindex.Index { return h.current.Load() }

// Set swaps in a rebuilt index.
func (h *IndexHolder) Set(ix *pageindex.Index) { h.current.Store(ix) }

// Lookup implements the resolver's page index capability against whatever
// index is current.
func (h *IndexHolder) Lookup(candidate, dir, locale string) (string, bool) {
	return h.Get().Lookup(candidate, dir, locale)
}

// Server serves the docsite HTTP API.
type Server struct {
	cfg        config.ServerConfig
	holder     *IndexHolder
	resolver   *hrefs.Resolver
	loader     *contentpath.Loader
	aggregator *params.Aggregator
	registry   *prometheus.Registry

	httpServer *http.Server
}

// New wires a server over the given collaborators. registry carries the
// process metrics; nil falls back to the default registry.
func New(cfg config.ServerConfig, holder *IndexHolder, resolver *hrefs.Resolver, loader *contentpath.Loader, aggregator *params.Aggregator, registry *prometheus.Registry) *Server {
	s := &Server{
		cfg:        cfg,
		holder:     holder,
		resolver:   resolver,
		loader:     loader,
		aggregator: aggregator,
		registry:   registry,
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: chain(slog.Default())(s.routes()),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/routes", s.handleRoutes)
	mux.HandleFunc("GET /api/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/classify", s.handleClassify)
	mux.HandleFunc("GET /raw/{route...}", s.handleRawSource)
	mux.HandleFunc("POST /api/rewrite/markdown", s.handleRewriteMarkdown)
	mux.HandleFunc("POST /api/rewrite/html", s.handleRewriteHTML)
	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	} else {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	return mux
}

// Handler exposes the fully wired handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", slog.String("addr", s.cfg.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return <-errCh
}
