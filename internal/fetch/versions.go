package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// versionParam marks a link to one of the alternate diagrams of a chord.
const versionParam = "&v="

// CountVersions counts the alternate diagram links on a chord page. Raw text
// inside script and style elements is not markup and is ignored.
func CountVersions(markup []byte) (int, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return 0, fmt.Errorf("failed to parse page: %w", err)
	}
	return countParam(doc), nil
}

func countParam(n *html.Node) int {
	count := 0
	switch n.Type {
	case html.ElementNode:
		for _, attr := range n.Attr {
			count += strings.Count(attr.Val, versionParam)
		}
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return count
		}
	case html.TextNode:
		count += strings.Count(n.Data, versionParam)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countParam(c)
	}
	return count
}
