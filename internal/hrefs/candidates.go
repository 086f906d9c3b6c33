// Package hrefs normalizes relative hyperlinks found in rendered content into
// canonical, resolvable forms. Authoring conventions differ across the synced
// upstream sources (.md vs .mdx extensions, directory-style links), so
// resolution tries an ordered list of candidate shapes against the page index
// instead of assuming a single convention.
package hrefs

import "strings"

// BuildCandidates expands a relative link path into the ordered list of
// canonical path variants to try against the page index. Order encodes
// priority: the first candidate that resolves wins.
//
// Rules, by shape of the path:
//   - ".md" suffix: the literal path first, then the ".mdx" rewrite. Migrated
//     content keeps .md links even where files were renamed to .mdx.
//   - ".mdx" suffix: already canonical.
//   - trailing slash: sibling file ("docs/" -> "docs.mdx") before nested index
//     ("docs/index.mdx"), since sibling files are the more common authoring
//     pattern in migrated content.
//   - anything else: returned unchanged. Unknown shapes are not guessed at.
func BuildCandidates(path string) []string {
	switch {
	case strings.HasSuffix(path, ".md"):
		return []string{path, strings.TrimSuffix(path, ".md") + ".mdx"}
	case strings.HasSuffix(path, ".mdx"):
		return []string{path}
	case strings.HasSuffix(path, "/"):
		return []string{strings.TrimSuffix(path, "/") + ".mdx", path + "index.mdx"}
	default:
		return []string{path}
	}
}
