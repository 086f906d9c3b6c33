package hrefs

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeIndex resolves candidate paths against a fixed set of content files,
// mirroring how the page index joins candidates onto the current directory.
type fakeIndex struct {
	pages map[string]string // content path -> canonical URL
}

func (f *fakeIndex) Lookup(candidate, dir, locale string) (string, bool) {
	joined := path.Join(dir, candidate)
	url, ok := f.pages[joined]
	return url, ok
}

func newTestResolver(pages map[string]string) *Resolver {
	return NewResolver(&fakeIndex{pages: pages}, nil)
}

func TestResolve_LeavesNonRelativeHrefsUntouched(t *testing.T) {
	r := newTestResolver(nil)
	ctx := ResolveContext{Dir: "Infra/guides"}

	for _, href := range []string{
		"/Product-Opener/api",
		"#install",
		"https://example.com/docs",
		"mailto:team@example.com",
		"tel:+123456",
	} {
		require.Equal(t, href, r.Resolve(href, ctx), "href %q", href)
	}
}

func TestResolve_RewritesMarkdownLinkPreservingFragment(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/setup.mdx": "/Infra/setup",
	})

	got := r.Resolve("../setup.md#install", ResolveContext{Dir: "Infra/guides"})
	require.Equal(t, "/Infra/setup#install", got)
}

func TestResolve_PreservesQueryAndFragment(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/foo.mdx": "/Infra/foo",
	})

	got := r.Resolve("foo?x=1#y", ResolveContext{Dir: "Infra"})
	// Path shape "foo" is not guessed at, so resolution falls back.
	require.Equal(t, "foo?x=1#y", got)

	got = r.Resolve("foo.md?x=1#y", ResolveContext{Dir: "Infra"})
	require.Equal(t, "/Infra/foo?x=1#y", got)
}

func TestResolve_DirectoryStyleLinkPrefersSiblingFile(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/docs.mdx":       "/Infra/docs",
		"Infra/docs/index.mdx": "/Infra/docs-nested",
	})

	got := r.Resolve("docs/", ResolveContext{Dir: "Infra"})
	require.Equal(t, "/Infra/docs", got)
}

func TestResolve_DirectoryStyleLinkFallsBackToNestedIndex(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/docs/index.mdx": "/Infra/docs",
	})

	got := r.Resolve("docs/", ResolveContext{Dir: "Infra"})
	require.Equal(t, "/Infra/docs", got)
}

func TestResolve_FallsBackToOriginalHrefWhenNothingMatches(t *testing.T) {
	r := newTestResolver(nil)

	require.Equal(t, "missing.md", r.Resolve("missing.md", ResolveContext{Dir: "Infra"}))
	require.Equal(t, "../gone/", r.Resolve("../gone/", ResolveContext{Dir: "Infra"}))
}

func TestResolve_IsIdempotent(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/setup.mdx": "/Infra/setup",
	})
	ctx := ResolveContext{Dir: "Infra"}

	for _, href := range []string{"setup.md", "setup.mdx", "missing.md", "docs/", "#x", "/abs"} {
		once := r.Resolve(href, ctx)
		require.Equal(t, once, r.Resolve(once, ctx), "href %q", href)
	}
}

func TestRewriter_AppliesFixedContext(t *testing.T) {
	r := newTestResolver(map[string]string{
		"Infra/setup.mdx": "/Infra/setup",
	})

	rewrite := r.Rewriter(ResolveContext{Dir: "Infra"})
	require.Equal(t, "/Infra/setup", rewrite("setup.md"))
	require.Equal(t, "https://x.test/", rewrite("https://x.test/"))
}
