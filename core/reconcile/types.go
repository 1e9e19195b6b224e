package reconcile

import (
	"errors"
	"fmt"

	"md-table-sync/core/table"
)

// ErrKeyColumnNotFound indicates the configured key column is absent from a header.
var ErrKeyColumnNotFound = errors.New("key column not found")

// Side names one of the two tables taking part in a run.
type Side string

const (
	// SideTarget is the table being rewritten.
	SideTarget Side = "target"
	// SideSource is the table supplying values.
	SideSource Side = "source"
)

// KeyColumnError reports which table lacks which key column.
type KeyColumnError struct {
	Side   Side
	Column string
}

// Error implements the error interface
func (e *KeyColumnError) Error() string {
	return fmt.Sprintf("%s table: %v: %q", e.Side, ErrKeyColumnNotFound, e.Column)
}

// Is implements errors.Is support
func (e *KeyColumnError) Is(target error) bool {
	return target == ErrKeyColumnNotFound
}

// FieldMapping pairs a target column name with the source column feeding it.
type FieldMapping struct {
	Target string `json:"target" yaml:"target"`
	Source string `json:"source" yaml:"source"`
}

// String returns the mapping in Target=Source form.
func (m FieldMapping) String() string {
	return m.Target + "=" + m.Source
}

// ResolvedField is a FieldMapping whose names were found in both headers.
type ResolvedField struct {
	Mapping     FieldMapping
	TargetIndex int
	SourceIndex int
}

// SkippedField is a FieldMapping that could not be resolved.
type SkippedField struct {
	Mapping FieldMapping `json:"mapping" yaml:"mapping"`
	// Reason explains which side failed, e.g. "target column not found".
	Reason string `json:"reason" yaml:"reason"`
}

// Spec defines the inputs of one reconciliation.
type Spec struct {
	// Target is the table whose cells are rewritten.
	Target *table.Table

	// Source is the table supplying new values.
	Source *table.Table

	// TargetKey names the key column of the target. Empty selects column 0.
	TargetKey string

	// SourceKey names the key column of the source. Empty selects column 0.
	SourceKey string

	// Fields lists the columns to synchronize.
	Fields []FieldMapping
}

// RowStatus classifies a target row.
type RowStatus string

const (
	// RowMatched means a source row with the same key was found.
	RowMatched RowStatus = "matched"
	// RowUnmatched means no source row carries the key.
	RowUnmatched RowStatus = "unmatched"
	// RowRagged means the row is too short for the columns in use and was passed through.
	RowRagged RowStatus = "ragged"
)

// Change is one rewritten cell.
type Change struct {
	// Key is the role key of the row.
	Key string `json:"key" yaml:"key"`
	// Field is the target column name.
	Field string `json:"field" yaml:"field"`
	// Old is the trimmed inner markup before the rewrite.
	Old string `json:"old" yaml:"old"`
	// New is the trimmed inner markup after the rewrite.
	New string `json:"new" yaml:"new"`
	// Row is the zero-based data row position in the target table.
	Row int `json:"row" yaml:"row"`
}

// RowResult represents the reconciliation output for a single target row.
type RowResult struct {
	// Row is the zero-based data row position in the target table.
	Row int `json:"row" yaml:"row"`

	// Key is the trimmed plain-text key. Empty for ragged rows without a key cell.
	Key string `json:"key" yaml:"key"`

	// Status classifies the row.
	Status RowStatus `json:"status" yaml:"status"`

	// Changes lists the cells that differ from the source.
	Changes []Change `json:"changes,omitempty" yaml:"changes,omitempty"`

	// Skipped lists mapped columns missing from the matched source row.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionRewriteCell replaces the inner markup of a target cell.
	ActionRewriteCell ActionType = "rewrite_cell"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the row key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Change describes the rewrite.
	Change Change `json:"change"`

	cell   *table.Cell
	markup string
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	// Results contains per-row reconciliation data in target order.
	Results []RowResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Fields contains the mappings that resolved in both tables.
	Fields []ResolvedField `json:"-"`

	// Skipped contains the mappings that could not be resolved.
	Skipped []SkippedField `json:"skipped"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Changes returns every planned change in target order.
func (p *Plan) Changes() []Change {
	changes := make([]Change, 0, len(p.Actions))
	for _, a := range p.Actions {
		changes = append(changes, a.Change)
	}
	return changes
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalRows is the number of target data rows.
	TotalRows int `json:"total_rows" yaml:"total_rows"`

	// SourceRows is the number of indexed source rows.
	SourceRows int `json:"source_rows" yaml:"source_rows"`

	// Matched counts target rows with a source row.
	Matched int `json:"matched" yaml:"matched"`

	// Unmatched counts target rows without a source row.
	Unmatched int `json:"unmatched" yaml:"unmatched"`

	// Ragged counts target rows passed through for being too short.
	Ragged int `json:"ragged" yaml:"ragged"`

	// ChangedRows counts target rows with at least one change.
	ChangedRows int `json:"changed_rows" yaml:"changed_rows"`

	// Changes counts planned cell rewrites.
	Changes int `json:"changes" yaml:"changes"`

	// SkippedFields counts unresolvable mappings.
	SkippedFields int `json:"skipped_fields" yaml:"skipped_fields"`

	// DuplicateKeys counts source rows ignored because their key was already indexed.
	DuplicateKeys int `json:"duplicate_keys" yaml:"duplicate_keys"`
}

// ReconcileOptions controls whether planned actions are applied.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
