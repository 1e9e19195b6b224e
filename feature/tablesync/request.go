package tablesync

import (
	"errors"
	"fmt"
	"strings"

	"md-table-sync/core/reconcile"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrUsage marks invalid run parameters.
var ErrUsage = errors.New("invalid usage")

// UsageError describes why a request was rejected.
type UsageError struct {
	Err error
}

// Error implements the error interface
func (e *UsageError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUsage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UsageError) Unwrap() error {
	return e.Err
}

// Is reports ErrUsage so callers can branch without unwrapping the cause.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

func usageError(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Request holds the parameters of one sync run.
type Request struct {
	// Target is the document that receives the values.
	Target string `json:"target"`
	// Source is the document the values are read from.
	Source string `json:"source"`
	// Heading anchors the table in both documents.
	Heading string `json:"heading,omitempty"`
	// HeadingSource anchors the source table when the documents use different headings.
	HeadingSource string `json:"heading_source,omitempty"`
	// HeadingTarget anchors the target table when the documents use different headings.
	HeadingTarget string `json:"heading_target,omitempty"`
	// Fields maps target columns to source columns.
	Fields []reconcile.FieldMapping `json:"fields"`
	// Key names the key column in both tables. Empty selects the first column.
	Key string `json:"key,omitempty"`
	// KeyTarget overrides Key for the target table.
	KeyTarget string `json:"key_target,omitempty"`
	// KeySource overrides Key for the source table.
	KeySource string `json:"key_source,omitempty"`
	// DryRun plans and reports without writing the target.
	DryRun bool `json:"dry_run,omitempty"`
	// ReportPath receives the change log when set.
	ReportPath string `json:"report_path,omitempty"`
}

// Validate checks the request before any document is read.
func (r Request) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Target, validation.Required.Error("target document is required"), validation.By(notBlank)),
		validation.Field(&r.Source, validation.Required.Error("source document is required"), validation.By(notBlank)),
		validation.Field(&r.Fields, validation.Required.Error("at least one field mapping is required"), validation.Each(validation.By(completeMapping))),
	)
	if err != nil {
		return &UsageError{Err: err}
	}

	pair := r.HeadingSource != "" || r.HeadingTarget != ""
	switch {
	case r.Heading != "" && pair:
		return usageError("use either a shared heading or separate source and target headings, not both")
	case r.Heading == "" && !pair:
		return usageError("a heading is required")
	case pair && (r.HeadingSource == "" || r.HeadingTarget == ""):
		return usageError("source and target headings must be given together")
	}
	return nil
}

func notBlank(value any) error {
	if strings.TrimSpace(value.(string)) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

func completeMapping(value any) error {
	m := value.(reconcile.FieldMapping)
	if strings.TrimSpace(m.Target) == "" || strings.TrimSpace(m.Source) == "" {
		return validation.NewError("validation_field_mapping", "target and source columns are required")
	}
	return nil
}

// SourceHeading returns the heading that anchors the source table.
func (r Request) SourceHeading() string {
	if r.Heading != "" {
		return r.Heading
	}
	return r.HeadingSource
}

// TargetHeading returns the heading that anchors the target table.
func (r Request) TargetHeading() string {
	if r.Heading != "" {
		return r.Heading
	}
	return r.HeadingTarget
}

// TargetKey returns the key column name of the target table.
func (r Request) TargetKey() string {
	if r.KeyTarget != "" {
		return r.KeyTarget
	}
	return r.Key
}

// SourceKey returns the key column name of the source table.
func (r Request) SourceKey() string {
	if r.KeySource != "" {
		return r.KeySource
	}
	return r.Key
}

// ParseFieldMapping parses "Target=Source".
func ParseFieldMapping(s string) (reconcile.FieldMapping, error) {
	if strings.Count(s, "=") != 1 {
		return reconcile.FieldMapping{}, usageError("field mapping %q must have the form Target=Source", s)
	}
	target, source, _ := strings.Cut(s, "=")
	target, source = strings.TrimSpace(target), strings.TrimSpace(source)
	if target == "" || source == "" {
		return reconcile.FieldMapping{}, usageError("field mapping %q must name both columns", s)
	}
	return reconcile.FieldMapping{Target: target, Source: source}, nil
}

// ParseFieldMappings parses every "Target=Source" entry in order.
func ParseFieldMappings(values []string) ([]reconcile.FieldMapping, error) {
	mappings := make([]reconcile.FieldMapping, 0, len(values))
	for _, v := range values {
		m, err := ParseFieldMapping(v)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}
