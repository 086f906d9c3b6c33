package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("---\ntitle: Hello\n---\nbody text\n"))
	require.Equal(t, "title: Hello", fm)
	require.Equal(t, "body text\n", body)
}

func TestSplitFrontmatter_NoFrontmatter(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("just text"))
	require.Empty(t, fm)
	require.Equal(t, "just text", body)
}

func TestSplitFrontmatter_UnterminatedBlock(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("---\ntitle: broken\n"))
	require.Empty(t, fm)
	require.Equal(t, "---\ntitle: broken\n", body)
}
