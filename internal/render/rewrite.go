// Package render post-processes rendered HTML fragments, passing link
// destinations through the same href resolution the markdown pipeline uses.
package render

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttrs maps element names to the attribute carrying a link destination.
var linkAttrs = map[string]string{
	"a":   "href",
	"img": "src",
}

// RewriteHTML parses an HTML fragment and rewrites every <a href> and
// <img src> destination through resolve. The fragment is re-rendered, so
// formatting may be normalized.
func RewriteHTML(r io.Reader, resolve func(string) string) ([]byte, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteNode(n, resolve)
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("render html fragment: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func rewriteNode(n *html.Node, resolve func(string) string) {
	if n.Type == html.ElementNode {
		if attrName, ok := linkAttrs[n.Data]; ok {
			for i, attr := range n.Attr {
				if attr.Key == attrName && attr.Val != "" {
					n.Attr[i].Val = resolve(attr.Val)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, resolve)
	}
}
