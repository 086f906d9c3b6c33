package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteHTML_RewritesAnchorsAndImages(t *testing.T) {
	in := `<p><a href="../setup.md">setup</a> <img src="./arch.png" alt="arch"/></p>`

	out, err := RewriteHTML(strings.NewReader(in), func(href string) string {
		switch href {
		case "../setup.md":
			return "/Infra/setup"
		case "./arch.png":
			return "/assets/arch.png"
		}
		return href
	})
	require.NoError(t, err)

	got := string(out)
	require.Contains(t, got, `href="/Infra/setup"`)
	require.Contains(t, got, `src="/assets/arch.png"`)
}

func TestRewriteHTML_LeavesOtherAttributesAlone(t *testing.T) {
	in := `<a href="x.md" class="doc-link" data-href="x.md">x</a>`

	out, err := RewriteHTML(strings.NewReader(in), func(string) string { return "/resolved" })
	require.NoError(t, err)

	got := string(out)
	require.Contains(t, got, `href="/resolved"`)
	require.Contains(t, got, `class="doc-link"`)
	require.Contains(t, got, `data-href="x.md"`)
}

func TestRewriteHTML_EmptyDestinationSkipped(t *testing.T) {
	in := `<a href="">empty</a>`

	out, err := RewriteHTML(strings.NewReader(in), func(string) string { return "/never" })
	require.NoError(t, err)
	require.NotContains(t, string(out), "/never")
}

func TestRewriteHTML_NestedElements(t *testing.T) {
	in := `<div><ul><li><a href="a.md">a</a></li><li><a href="b.md">b</a></li></ul></div>`

	seen := map[string]bool{}
	_, err := RewriteHTML(strings.NewReader(in), func(href string) string {
		seen[href] = true
		return href
	})
	require.NoError(t, err)
	require.True(t, seen["a.md"])
	require.True(t, seen["b.md"])
}
