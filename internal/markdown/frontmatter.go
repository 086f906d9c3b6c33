package markdown

import "strings"

// SplitFrontmatter separates a leading "---" delimited YAML block from the
// markdown body. Content without frontmatter returns an empty first part.
func SplitFrontmatter(content []byte) (frontmatter, body string) {
	text := string(content)
	if !strings.HasPrefix(text, "---") {
		return "", text
	}
	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 3 {
		return "", text
	}
	return strings.TrimSpace(parts[1]), strings.TrimPrefix(parts[2], "\n")
}
