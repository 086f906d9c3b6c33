package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_MultipleRanges(t *testing.T) {
	src := []byte("aaa bbb ccc")

	out, err := ApplyEdits(src, []Edit{
		{Start: 8, End: 11, Replacement: []byte("C")},
		{Start: 0, End: 3, Replacement: []byte("A")},
	})
	require.NoError(t, err)
	require.Equal(t, "A bbb C", string(out))
}

func TestApplyEdits_RejectsOverlap(t *testing.T) {
	_, err := ApplyEdits([]byte("abcdef"), []Edit{
		{Start: 0, End: 4},
		{Start: 2, End: 6},
	})
	require.Error(t, err)
}

func TestRewriteLinks_RewritesChangedDestinations(t *testing.T) {
	body := []byte("See [setup](../setup.md#install) and [other](https://example.com).")

	out := RewriteLinks(body, func(href string) string {
		if href == "../setup.md#install" {
			return "/Infra/setup#install"
		}
		return href
	})

	require.Equal(t,
		"See [setup](/Infra/setup#install) and [other](https://example.com).",
		string(out))
}

func TestRewriteLinks_RewritesImageDestinations(t *testing.T) {
	out := RewriteLinks([]byte("![arch](./arch.png)"), func(href string) string {
		return strings.TrimPrefix(href, "./")
	})

	require.Equal(t, "![arch](arch.png)", string(out))
}

func TestRewriteLinks_SkipsFencedCodeBlocks(t *testing.T) {
	body := "before [a](x.md)\n```\n[b](y.md)\n```\nafter [c](z.md)\n"

	out := RewriteLinks([]byte(body), func(string) string { return "/resolved" })

	require.Equal(t,
		"before [a](/resolved)\n```\n[b](y.md)\n```\nafter [c](/resolved)\n",
		string(out))
}

func TestRewriteLinks_NoChangeReturnsInputUnchanged(t *testing.T) {
	body := []byte("plain text, [link](keep.md)")

	out := RewriteLinks(body, func(href string) string { return href })

	require.Equal(t, body, out)
}
