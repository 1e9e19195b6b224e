// Package table parses an HTML table fragment into a header and data rows while
// keeping the parsed node tree alive.
//
// Rows and cells are handles onto golang.org/x/net/html nodes. Mutating a cell
// rewrites that node's children only; Render serializes the whole tree again, so
// attributes and whitespace of untouched parts survive the round trip. The table
// markup is never rebuilt by hand.
//
// Rows are selected with precompiled XPath expressions evaluated by htmlquery.
// Only rows that belong to the outer table are considered; rows of tables nested
// inside cells stay opaque cell content.
//
// # Known Limitations
//
// Render re-serializes the whole tree, so untouched parts come back in the
// serializer's canonical form: entities such as &nbsp; are decoded to their
// characters, void elements are written self-closed (<br> becomes <br/>), quotes
// in text are escaped and attributes are double-quoted. Text placed directly
// inside <table> but outside any cell is moved out of the table by the HTML tree
// builder and is not rendered. Implied <tbody> elements are removed again per
// row group, so bare rows and explicit bodies can be mixed.
package table
