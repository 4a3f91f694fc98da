package diagram

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// imageRefPattern matches a marker image reference and captures its stem.
var imageRefPattern = regexp.MustCompile(`^img/(.+)\.gif$`)

// diagramTableID is the id of the table holding the diagram on a chord page.
const diagramTableID = "tab"

// ExtractGrid parses the markup of a diagram data cell into a Grid.
//
// Rows are terminated by <br>; whatever follows the last <br> is discarded.
func ExtractGrid(fragment string) (Grid, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), newCell())
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagram cell: %w", err)
	}
	cell := newCell()
	for _, n := range nodes {
		cell.AppendChild(n)
	}
	return gridFromCell(cell)
}

// ExtractPage locates the diagram cell of a full chord page and extracts it.
func ExtractPage(r io.Reader) (Grid, error) {
	cell, err := pageCell(r)
	if err != nil {
		return nil, err
	}
	return gridFromCell(cell)
}

// CellMarkup returns the inner markup of the diagram cell of a full chord page.
func CellMarkup(r io.Reader) (string, error) {
	cell, err := pageCell(r)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("failed to render diagram cell: %w", err)
		}
	}
	return buf.String(), nil
}

func newCell() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "td", DataAtom: atom.Td}
}

func pageCell(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	table := findElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Table && getAttr(n, "id") == diagramTableID
	})
	if table == nil {
		return nil, ErrDiagramNotFound
	}
	tr := findElement(table, func(n *html.Node) bool { return n.DataAtom == atom.Tr })
	if tr == nil {
		return nil, ErrDiagramNotFound
	}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			return c, nil
		}
	}
	return nil, ErrDiagramNotFound
}

// findElement returns the first descendant element of n (document order) matching fn.
func findElement(n *html.Node, fn func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && fn(c) {
			return c
		}
		if found := findElement(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// gridBuilder collects rows as it walks a cell. An image that fails to parse
// only fails the diagram once a <br> closes its row, so junk in the trailing
// segment is discarded along with it.
type gridBuilder struct {
	grid   Grid
	row    Row
	rowErr error
	err    error
}

func gridFromCell(cell *html.Node) (Grid, error) {
	b := &gridBuilder{}
	b.walk(cell)
	if b.err != nil {
		return nil, b.err
	}
	if len(b.grid) == 0 {
		return nil, &MalformedDiagramError{Reason: "no strings in diagram cell"}
	}
	return b.grid, nil
}

func (b *gridBuilder) walk(n *html.Node) {
	for c := n.FirstChild; c != nil && b.err == nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Img:
				if b.rowErr != nil {
					break
				}
				m, err := markerFromImage(c)
				if err != nil {
					b.rowErr = err
					break
				}
				b.row = append(b.row, m)
			case atom.Br:
				if b.rowErr != nil {
					b.err = b.rowErr
					return
				}
				b.grid = append(b.grid, b.row)
				b.row = nil
			}
		}
		b.walk(c)
	}
}

func markerFromImage(n *html.Node) (Marker, error) {
	src := getAttr(n, "src")
	match := imageRefPattern.FindStringSubmatch(src)
	if match == nil {
		return Marker{}, &MalformedDiagramError{Reason: "unexpected image reference", Ref: src}
	}
	return ParseMarker(match[1])
}
