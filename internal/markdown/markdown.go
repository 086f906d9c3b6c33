// Package markdown provides link analysis and rewriting for MDX/markdown
// bodies. Parsing uses Goldmark; rewriting applies targeted byte edits so
// untouched content survives verbatim.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks returns every link-like destination found in a markdown body
// (frontmatter already removed): inline links, images, autolinks and
// reference definitions, plus a lenient scan for destinations that strict
// CommonMark parsing would discard.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := collectTreeLinks(root, body)
	links = append(links, collectReferenceDefinitions(ctx)...)

	// Hand-written docs sometimes put spaces in destinations; CommonMark
	// drops those, so a lenient pass keeps them visible to the audit.
	links = append(links, extractPermissiveLinks(body)...)

	return links
}

func collectTreeLinks(root gmast.Node, body []byte) []Link {
	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Covers both inline links and used reference-style links;
			// Goldmark fills in the destination from the definition.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// collectReferenceDefinitions pulls `[label]: url` definitions out of the
// parse context. Goldmark never emits tree nodes for them, so unused
// definitions would otherwise escape the audit.
func collectReferenceDefinitions(ctx parser.Context) []Link {
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	links := make([]Link, 0, len(refs))
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}
