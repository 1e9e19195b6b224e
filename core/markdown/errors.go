package markdown

import (
	"errors"
	"fmt"
)

var (
	// ErrHeadingNotFound indicates the anchor heading does not occur in the document.
	ErrHeadingNotFound = errors.New("heading not found")

	// ErrTableOpenNotFound indicates no "<table" token follows the heading.
	ErrTableOpenNotFound = errors.New("table open tag not found after heading")

	// ErrTableCloseNotFound indicates no "</table>" token follows the table open tag.
	ErrTableCloseNotFound = errors.New("table close tag not found after heading")

	// ErrTableSpanInvalidated indicates the table span no longer matches the document
	// when it is re-located just before splicing.
	ErrTableSpanInvalidated = errors.New("table span invalidated")
)

// LocateError carries the document label and heading of a failed lookup.
type LocateError struct {
	// Label names the document (e.g. "target", "source"). May be empty.
	Label   string
	Heading string
	Err     error
}

// Error implements the error interface
func (e *LocateError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s document: %v: %q", e.Label, e.Err, e.Heading)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Heading)
}

// Unwrap implements errors.Unwrap
func (e *LocateError) Unwrap() error {
	return e.Err
}

// WithLabel returns a copy of err labelled with the document name when err is a
// *LocateError. Other errors are returned unchanged.
func WithLabel(err error, label string) error {
	var le *LocateError
	if errors.As(err, &le) {
		labelled := *le
		labelled.Label = label
		return &labelled
	}
	return err
}
