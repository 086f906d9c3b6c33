package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/pageindex"
)

func TestWarmStartIndex_ReturnsPersistedPages(t *testing.T) {
	ctx := context.Background()
	store, err := pageindex.OpenStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Save(ctx, pageindex.NewIndex("en", []pageindex.Page{
		{ContentPath: "Infra/setup.mdx", URL: "/Infra/setup", Dir: "Infra", Locale: "en"},
	})))

	ix := warmStartIndex(ctx, store, "en")
	require.NotNil(t, ix)
	require.Equal(t, 1, ix.Len())

	_, ok := ix.Get("Infra/setup.mdx", "en")
	require.True(t, ok)
}

func TestWarmStartIndex_EmptyStoreReturnsNil(t *testing.T) {
	store, err := pageindex.OpenStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.Nil(t, warmStartIndex(context.Background(), store, "en"))
}

func TestBuildApp_SeedServedWithoutScan(t *testing.T) {
	contentDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "scanned.mdx"), []byte("# Scanned"), 0o644))

	cfg := config.Default()
	cfg.Content.Dir = contentDir
	cfg.Content.ReportsDir = t.TempDir()

	seed := pageindex.NewIndex("en", []pageindex.Page{
		{ContentPath: "persisted.mdx", URL: "/persisted", Locale: "en"},
	})

	a, err := buildApp(context.Background(), cfg, seed)
	require.NoError(t, err)

	_, ok := a.holder.Get().Get("persisted.mdx", "en")
	require.True(t, ok, "seed index should be served as-is")
	_, ok = a.holder.Get().Get("scanned.mdx", "en")
	require.False(t, ok, "seeded app must not rescan the content tree")
}

func TestBuildApp_NilSeedScansContent(t *testing.T) {
	contentDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "scanned.mdx"), []byte("# Scanned"), 0o644))

	cfg := config.Default()
	cfg.Content.Dir = contentDir
	cfg.Content.ReportsDir = t.TempDir()

	a, err := buildApp(context.Background(), cfg, nil)
	require.NoError(t, err)

	_, ok := a.holder.Get().Get("scanned.mdx", "en")
	require.True(t, ok)
}
