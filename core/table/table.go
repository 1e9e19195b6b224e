package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrEmptyTable indicates that no row of the fragment has a single cell, so no
// header can be resolved.
var ErrEmptyTable = errors.New("table has no header row")

// Table is a parsed HTML table.
type Table struct {
	// Headers holds the plain-text header names in column order.
	Headers []string
	// Header is the row the headers were read from.
	Header *Row
	// Rows holds the data rows in document order. The header row is never included.
	Rows []*Row

	root *html.Node
}

// Row is one <tr> with its <th>/<td> cells in document order.
type Row struct {
	Cells []*Cell

	node *html.Node
}

// Cell is a handle onto a <td> or <th> node.
type Cell struct {
	node *html.Node
}

// ColumnIndex returns the position of the first header equal to name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// CellCounts returns the number of cells of every data row.
func (t *Table) CellCounts() []int {
	counts := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		counts[i] = r.Len()
	}
	return counts
}

// Render serializes the table tree, including every mutation applied to its cells.
func (t *Table) Render() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, t.root); err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return b.String(), nil
}

// Len returns the number of cells in the row.
func (r *Row) Len() int {
	return len(r.Cells)
}

// Cell returns the cell at position i, if the row has one.
func (r *Row) Cell(i int) (*Cell, bool) {
	if i < 0 || i >= len(r.Cells) {
		return nil, false
	}
	return r.Cells[i], true
}

// Texts returns the plain-text projection of every cell.
func (r *Row) Texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text()
	}
	return texts
}

// Tag returns "td" or "th".
func (c *Cell) Tag() string {
	return c.node.Data
}

// Text returns the cell content with markup stripped and surrounding space trimmed.
func (c *Cell) Text() string {
	return strings.TrimSpace(htmlquery.InnerText(c.node))
}

// InnerHTML returns the serialized children of the cell, untrimmed.
func (c *Cell) InnerHTML() string {
	return htmlquery.OutputHTML(c.node, false)
}

// SetInnerHTML replaces every child of the cell with the nodes parsed from markup.
// The markup is parsed in the context of the cell element.
func (c *Cell) SetInnerHTML(markup string) error {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     c.node.Data,
		DataAtom: c.node.DataAtom,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("failed to parse cell markup: %w", err)
	}

	for child := c.node.FirstChild; child != nil; {
		next := child.NextSibling
		c.node.RemoveChild(child)
		child = next
	}
	for _, n := range nodes {
		c.node.AppendChild(n)
	}
	return nil
}
