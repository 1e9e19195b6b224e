package markdown

import "strings"

const (
	tableOpenToken  = "<table"
	tableCloseToken = "</table>"
)

// TableSpan is the byte range [Start, End) of one <table>...</table> block.
type TableSpan struct {
	// HeadingStart is the offset of the anchor heading that led to this span.
	HeadingStart int
	// Start is the offset of the "<table" token.
	Start int
	// End is the offset just past the "</table>" token.
	End int
}

// Len returns the number of bytes covered by the span.
func (s TableSpan) Len() int {
	return s.End - s.Start
}

// Locate finds the first table that follows heading in doc.
func Locate(doc, heading string) (TableSpan, error) {
	if heading == "" {
		return TableSpan{}, &LocateError{Heading: heading, Err: ErrHeadingNotFound}
	}

	headingStart := strings.Index(doc, heading)
	if headingStart < 0 {
		return TableSpan{}, &LocateError{Heading: heading, Err: ErrHeadingNotFound}
	}
	searchFrom := headingStart + len(heading)

	open := strings.Index(doc[searchFrom:], tableOpenToken)
	if open < 0 {
		return TableSpan{}, &LocateError{Heading: heading, Err: ErrTableOpenNotFound}
	}
	start := searchFrom + open

	closing := strings.Index(doc[start:], tableCloseToken)
	if closing < 0 {
		return TableSpan{}, &LocateError{Heading: heading, Err: ErrTableCloseNotFound}
	}

	return TableSpan{
		HeadingStart: headingStart,
		Start:        start,
		End:          start + closing + len(tableCloseToken),
	}, nil
}

// Extract returns the text covered by span.
// The span must come from Locate on the same document.
func Extract(doc string, span TableSpan) string {
	return doc[span.Start:span.End]
}
