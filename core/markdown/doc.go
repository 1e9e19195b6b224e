// Package markdown locates raw HTML tables inside markdown text and splices
// rewritten tables back into it.
//
// The package never parses markdown. A table is addressed by a literal heading
// string: the first occurrence of the heading anchors the search, and the first
// "<table" token after it up to the first "</table>" token forms the span.
//
// # Known Limitations
//
// Token matching is literal and case-sensitive. A nested table closes the span
// early, and "<TABLE>" or whitespace inside the tag name is not recognised.
// These are properties of the anchoring contract, not parser bugs.
//
// # Usage
//
//	span, err := markdown.Locate(doc, "### Roles")
//	if err != nil {
//	    return err
//	}
//	fragment := markdown.Extract(doc, span)
//	// ... rewrite fragment ...
//	out, err := markdown.Splice(doc, "### Roles", span, rewritten, markdown.Config{BlankLineBefore: true})
package markdown
