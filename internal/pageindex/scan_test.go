package pageindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/routes"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild_DerivesContentPathAndURL(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Infra", "setup.mdx"), "# Setup")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("Infra/setup.mdx", "en")
	require.True(t, ok)
	require.Equal(t, "/Infra/setup", p.URL)
	require.Equal(t, "Infra", p.Dir)
}

func TestBuild_StripsMarkerFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Infra", "(docs)", "setup.mdx"), "# Setup")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("Infra/setup.mdx", "en")
	require.True(t, ok)
	require.Equal(t, "/Infra/setup", p.URL)
}

func TestBuild_IndexFilesMapToDirectoryRoute(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Infra", "index.mdx"), "# Infra")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("Infra/index.mdx", "en")
	require.True(t, ok)
	require.Equal(t, "/Infra", p.URL)
}

func TestBuild_DetectsLocaleSuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Infra", "setup.fr.mdx"), "# Installation")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("Infra/setup.mdx", "fr")
	require.True(t, ok)
	require.Equal(t, "fr", p.Locale)
}

func TestBuild_NonLocaleDottedNameKeptIntact(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "api", "v2.full.mdx"), "body")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	_, ok := ix.Get("api/v2.full.mdx", "en")
	require.True(t, ok)
}

func TestBuild_AppliesRoutePrefix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2024-outage.md"), "# Outage")

	ix, err := NewScanner("", "en",
		Root{Dir: root, RoutePrefix: routes.Route{"Infra", "reports"}}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("Infra/reports/2024-outage.md", "en")
	require.True(t, ok)
	require.Equal(t, "/Infra/reports/2024-outage", p.URL)
}

func TestBuild_ReadsFrontmatterTitleAndFingerprint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "page.mdx"), "---\ntitle: Hello\n---\nbody\n")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)

	p, ok := ix.Get("page.mdx", "en")
	require.True(t, ok)
	require.Equal(t, "Hello", p.Title)
	require.NotEmpty(t, p.Fingerprint)
}

func TestBuild_MissingRootIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "page.mdx"), "body")

	ix, err := NewScanner("", "en",
		Root{Dir: filepath.Join(root, "does-not-exist")},
		Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ix.Len())
}

func TestBuild_SkipsNonMarkdownAndHiddenFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "page.mdx"), "body")
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, ".hidden.mdx"), "ignored")
	writeFile(t, filepath.Join(root, ".git", "config.mdx"), "ignored")

	ix, err := NewScanner("", "en", Root{Dir: root}).Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ix.Len())
}
