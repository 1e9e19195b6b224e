package markdown

import (
	"fmt"
	"strings"
)

// Config controls the glue text placed around a spliced table.
type Config struct {
	// BlankLineBefore makes sure the table is preceded by an empty line.
	BlankLineBefore bool `mapstructure:"blank_line_before" default:"true"`
	// TrailingNewline makes sure a newline follows the closing tag.
	TrailingNewline bool `mapstructure:"trailing_newline" default:"false"`
}

// Splice replaces the bytes covered by span with table.
//
// The span is re-located from heading first; if it no longer matches, or does not fit
// the document, ErrTableSpanInvalidated is returned and doc is left as is.
// Glue text is only inserted when missing, so splicing the output again with the same
// layout yields the same document.
func Splice(doc, heading string, span TableSpan, table string, layout Config) (string, error) {
	if span.Start < 0 || span.End > len(doc) || span.Start >= span.End {
		return "", fmt.Errorf("%w: span [%d, %d) outside document of %d bytes",
			ErrTableSpanInvalidated, span.Start, span.End, len(doc))
	}

	fresh, err := Locate(doc, heading)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTableSpanInvalidated, err)
	}
	if fresh != span {
		return "", fmt.Errorf("%w: expected [%d, %d), found [%d, %d)",
			ErrTableSpanInvalidated, span.Start, span.End, fresh.Start, fresh.End)
	}

	before := doc[:span.Start]
	after := doc[span.End:]

	var b strings.Builder
	b.Grow(len(doc) - span.Len() + len(table) + 3)
	b.WriteString(before)
	if layout.BlankLineBefore {
		b.WriteString(missingBlankLine(before))
	}
	b.WriteString(table)
	if layout.TrailingNewline && !strings.HasPrefix(after, "\n") && !strings.HasPrefix(after, "\r\n") {
		b.WriteString("\n")
	}
	b.WriteString(after)

	return b.String(), nil
}

// missingBlankLine returns the newlines needed for before to end with an empty line.
func missingBlankLine(before string) string {
	switch {
	case before == "":
		return ""
	case strings.HasSuffix(before, "\n\n"), strings.HasSuffix(before, "\r\n\r\n"):
		return ""
	case strings.HasSuffix(before, "\n"):
		return "\n"
	default:
		return "\n\n"
	}
}
