package reconcile

import (
	"fmt"
	"strings"

	"md-table-sync/core/table"
)

// ResolveFields resolves every mapping against the target and source headers.
// Mappings with an unknown column name on either side are returned as skipped.
func ResolveFields(target, source *table.Table, mappings []FieldMapping) ([]ResolvedField, []SkippedField) {
	var (
		resolved []ResolvedField
		skipped  []SkippedField
	)

	for _, m := range mappings {
		ti := target.ColumnIndex(m.Target)
		si := source.ColumnIndex(m.Source)

		switch {
		case ti < 0 && si < 0:
			skipped = append(skipped, SkippedField{Mapping: m, Reason: "target and source columns not found"})
		case ti < 0:
			skipped = append(skipped, SkippedField{Mapping: m, Reason: "target column not found"})
		case si < 0:
			skipped = append(skipped, SkippedField{Mapping: m, Reason: "source column not found"})
		default:
			resolved = append(resolved, ResolvedField{Mapping: m, TargetIndex: ti, SourceIndex: si})
		}
	}

	return resolved, skipped
}

// RequiredCells returns the minimum cell count a target row needs for the key
// column and every resolved field.
func RequiredCells(keyIndex int, fields []ResolvedField) int {
	highest := keyIndex
	for _, f := range fields {
		if f.TargetIndex > highest {
			highest = f.TargetIndex
		}
	}
	return highest + 1
}

// SyncRow overwrites the mapped cells of target that differ from source and
// returns one Change per rewritten cell.
func SyncRow(target, source *table.Row, key string, fields []ResolvedField) ([]Change, error) {
	actions, _ := planRow(target, source, key, -1, fields)

	changes := make([]Change, 0, len(actions))
	for _, a := range actions {
		if err := a.cell.SetInnerHTML(a.markup); err != nil {
			return changes, fmt.Errorf("failed to rewrite %q of %q: %w", a.Change.Field, key, err)
		}
		changes = append(changes, a.Change)
	}
	return changes, nil
}

// planRow compares the mapped cells of target and source without mutating either.
// It returns the rewrite actions and the names of mapped columns the source row lacks.
func planRow(target, source *table.Row, key string, rowIndex int, fields []ResolvedField) ([]Action, []string) {
	var (
		actions []Action
		skipped []string
	)

	for _, f := range fields {
		targetCell, ok := target.Cell(f.TargetIndex)
		if !ok {
			skipped = append(skipped, f.Mapping.Target)
			continue
		}
		sourceCell, ok := source.Cell(f.SourceIndex)
		if !ok {
			skipped = append(skipped, f.Mapping.Target)
			continue
		}

		incoming := sourceCell.InnerHTML()
		current := strings.TrimSpace(targetCell.InnerHTML())
		next := strings.TrimSpace(incoming)
		if current == next {
			continue
		}

		actions = append(actions, Action{
			Type:   ActionRewriteCell,
			Key:    key,
			Reason: fmt.Sprintf("%s differs from source %s", f.Mapping.Target, f.Mapping.Source),
			Change: Change{
				Key:   key,
				Field: f.Mapping.Target,
				Old:   current,
				New:   next,
				Row:   rowIndex,
			},
			cell:   targetCell,
			markup: incoming,
		})
	}

	return actions, skipped
}
