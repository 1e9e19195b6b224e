package table

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tableExpr = xpath.MustCompile("//table")
	rowExpr   = xpath.MustCompile("//tr")
	cellExpr  = xpath.MustCompile("./*[self::td or self::th]")
)

// Parse parses fragment, which must contain a <table> element, into a Table.
//
// The first row with at least one cell becomes the header; rows without cells are
// skipped. Data rows may be ragged.
func Parse(fragment string) (*Table, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table fragment: %w", err)
	}

	root := findTable(nodes)
	if root == nil {
		return nil, fmt.Errorf("%w: fragment contains no table element", ErrEmptyTable)
	}

	unwrapImpliedBodies(root, bodySections(fragment))

	t := &Table{root: root}
	for _, tr := range htmlquery.QuerySelectorAll(root, rowExpr) {
		if owner(tr) != root {
			continue
		}

		row := &Row{node: tr}
		for _, cell := range htmlquery.QuerySelectorAll(tr, cellExpr) {
			row.Cells = append(row.Cells, &Cell{node: cell})
		}
		if row.Len() == 0 {
			continue
		}

		if t.Header == nil {
			t.Header = row
			t.Headers = row.Texts()
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if t.Header == nil {
		return nil, ErrEmptyTable
	}
	return t, nil
}

func findTable(nodes []*html.Node) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return n
		}
		if found := htmlquery.QuerySelector(n, tableExpr); found != nil {
			return found
		}
	}
	return nil
}

// owner returns the closest table ancestor of n.
func owner(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Table {
			return p
		}
	}
	return nil
}

// bodySections reports, for every <tbody> the tree builder will place directly
// under the outer table, whether the fragment wrote its start tag. Bare rows
// outside any row group open an implied section; thead and tfoot are not counted.
func bodySections(fragment string) []bool {
	var (
		sections  []bool
		depth     int
		inSection bool
	)

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return sections
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Table:
				depth++
			case atom.Tbody:
				if depth == 1 {
					sections = append(sections, true)
					inSection = true
				}
			case atom.Thead, atom.Tfoot:
				if depth == 1 {
					inSection = true
				}
			case atom.Tr, atom.Td, atom.Th:
				if depth == 1 && !inSection {
					sections = append(sections, false)
					inSection = true
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Table:
				depth--
			case atom.Tbody, atom.Thead, atom.Tfoot:
				if depth == 1 {
					inSection = false
				}
			}
		}
	}
}

// unwrapImpliedBodies moves the children of every implied <tbody> directly under
// root back into root. The HTML tree builder inserts that element around bare
// <tr> rows; the source text never had it. sections comes from bodySections.
func unwrapImpliedBodies(root *html.Node, sections []bool) {
	i := 0
	for child := root.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.ElementNode && child.DataAtom == atom.Tbody {
			if i < len(sections) && !sections[i] {
				for grandchild := child.FirstChild; grandchild != nil; {
					following := grandchild.NextSibling
					child.RemoveChild(grandchild)
					root.InsertBefore(grandchild, child)
					grandchild = following
				}
				root.RemoveChild(child)
			}
			i++
		}
		child = next
	}
}
