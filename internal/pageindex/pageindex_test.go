package pageindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return NewIndex("en", []Page{
		{ContentPath: "Infra/setup.mdx", URL: "/Infra/setup", Dir: "Infra"},
		{ContentPath: "Infra/guides/deploy.mdx", URL: "/Infra/guides/deploy", Dir: "Infra/guides"},
		{ContentPath: "Infra/setup.mdx", URL: "/fr/Infra/setup", Dir: "Infra", Locale: "fr"},
		{ContentPath: "index.mdx", URL: "/", Dir: ""},
	})
}

func TestLookup_ResolvesRelativeCandidate(t *testing.T) {
	ix := testIndex()

	url, ok := ix.Lookup("../setup.mdx", "Infra/guides", "")
	require.True(t, ok)
	require.Equal(t, "/Infra/setup", url)
}

func TestLookup_LocaleFallsBackToDefault(t *testing.T) {
	ix := testIndex()

	url, ok := ix.Lookup("deploy.mdx", "Infra/guides", "fr")
	require.True(t, ok)
	require.Equal(t, "/Infra/guides/deploy", url)
}

func TestLookup_PrefersRequestedLocale(t *testing.T) {
	ix := testIndex()

	url, ok := ix.Lookup("setup.mdx", "Infra", "fr")
	require.True(t, ok)
	require.Equal(t, "/fr/Infra/setup", url)
}

func TestLookup_RejectsEscapeAboveRoot(t *testing.T) {
	ix := testIndex()

	_, ok := ix.Lookup("../../setup.mdx", "Infra", "")
	require.False(t, ok)
}

func TestLookup_MissingCandidate(t *testing.T) {
	ix := testIndex()

	_, ok := ix.Lookup("missing.mdx", "Infra", "")
	require.False(t, ok)
}

func TestNewIndex_FirstPageWinsOnDuplicatePath(t *testing.T) {
	ix := NewIndex("en", []Page{
		{ContentPath: "a.mdx", URL: "/first"},
		{ContentPath: "a.mdx", URL: "/second"},
	})

	url, ok := ix.Lookup("a.mdx", "", "")
	require.True(t, ok)
	require.Equal(t, "/first", url)
}

func TestPages_DeterministicOrder(t *testing.T) {
	ix := testIndex()

	pages := ix.Pages()
	require.Len(t, pages, 4)
	for i := 1; i < len(pages); i++ {
		prev, cur := pages[i-1], pages[i]
		require.True(t, prev.Locale < cur.Locale ||
			(prev.Locale == cur.Locale && prev.ContentPath < cur.ContentPath))
	}
}
