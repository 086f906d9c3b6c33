package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/hrefs"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/routes"
)

// maxRewriteBody bounds posted rewrite payloads.
const maxRewriteBody = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", logfields.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"pages":  s.holder.Get().Len(),
	})
}

// handleRoutes returns the full enumerated route list.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	list, err := s.aggregator.EnumerateRoutes(r.Context())
	if err != nil {
		slog.Error("Route enumeration failed", logfields.Error(err))
		http.Error(w, "route enumeration failed", http.StatusInternalServerError)
		return
	}

	out := make([]string, len(list))
	for i, route := range list {
		out[i] = route.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(out),
		"routes": out,
	})
}

// handleResolve resolves one href in the addressing context given by the
// dir/locale query parameters.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	href := r.URL.Query().Get("href")
	if href == "" {
		http.Error(w, "missing href parameter", http.StatusBadRequest)
		return
	}

	resolved := s.resolver.Resolve(href, resolveContextFromQuery(r))

	writeJSON(w, http.StatusOK, map[string]any{
		"href":     href,
		"resolved": resolved,
		"changed":  resolved != href,
	})
}

// handleClassify reports the namespace of one route.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	route := routes.Parse(r.URL.Query().Get("route"))
	writeJSON(w, http.StatusOK, map[string]any{
		"route":     route.String(),
		"namespace": routes.Classify(route),
	})
}

// handleRewriteMarkdown rewrites every link destination in the posted
// markdown body through the resolver, in the addressing context given by the
// dir/locale query parameters.
func (s *Server) handleRewriteMarkdown(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRewriteBody))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	rewriter := s.resolver.Rewriter(resolveContextFromQuery(r))
	out := markdown.RewriteLinks(body, rewriter)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(out)
}

// handleRewriteHTML rewrites anchor and image destinations in the posted
// HTML fragment through the resolver.
func (s *Server) handleRewriteHTML(w http.ResponseWriter, r *http.Request) {
	rewriter := s.resolver.Rewriter(resolveContextFromQuery(r))
	out, err := render.RewriteHTML(http.MaxBytesReader(w, r.Body, maxRewriteBody), rewriter)
	if err != nil {
		http.Error(w, "invalid html fragment", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

func resolveContextFromQuery(r *http.Request) hrefs.ResolveContext {
	return hrefs.ResolveContext{
		Dir:    r.URL.Query().Get("dir"),
		Locale: r.URL.Query().Get("locale"),
	}
}

// handleRawSource serves the backing markdown source for a route. A route
// without a backing file (including generated api-reference pages) yields an
// empty 200, not an error.
func (s *Server) handleRawSource(w http.ResponseWriter, r *http.Request) {
	route := routes.Parse(r.PathValue("route"))

	src := s.loader.Load(r.Context(), route)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if src.Found() {
		_, _ = w.Write(src.Content)
	}
}
