package contentpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/routes"
)

func TestCandidates_DirectFileBeforeDirectoryIndex(t *testing.T) {
	g := NewGenerator("content")

	got := g.Candidates(routes.Route{"Infra", "setup"})

	require.Equal(t, filepath.Join("content", "Infra", "setup.mdx"), got[0])
	require.Equal(t, filepath.Join("content", "Infra", "setup", "index.mdx"), got[1])
}

func TestCandidates_MarkerInjectionAtFirstTwoBoundaries(t *testing.T) {
	g := NewGenerator("content")

	got := g.Candidates(routes.Route{"a", "b", "c"})

	require.Equal(t, []string{
		filepath.Join("content", "a", "b", "c.mdx"),
		filepath.Join("content", "a", "b", "c", "index.mdx"),
		filepath.Join("content", "a", "(docs)", "b", "c.mdx"),
		filepath.Join("content", "a", "(docs)", "b", "c", "index.mdx"),
		filepath.Join("content", "a", "b", "(docs)", "c.mdx"),
		filepath.Join("content", "a", "b", "(docs)", "c", "index.mdx"),
	}, got)
}

func TestCandidates_MarkerInjectionBoundedByRouteLength(t *testing.T) {
	g := NewGenerator("content")

	got := g.Candidates(routes.Route{"only"})

	require.Equal(t, []string{
		filepath.Join("content", "only.mdx"),
		filepath.Join("content", "only", "index.mdx"),
		filepath.Join("content", "only", "(docs).mdx"),
		filepath.Join("content", "only", "(docs)", "index.mdx"),
	}, got)
}

func TestCandidates_RootRouteEndsWithRootIndexFallback(t *testing.T) {
	g := NewGenerator("content")

	got := g.Candidates(routes.Route{})

	require.NotEmpty(t, got)
	require.Equal(t, filepath.Join("content", "index.mdx"), got[len(got)-1])
}
