package reconcile

import (
	"errors"
	"fmt"
)

// ReconcileWithPlan matches every target row and plans the cell rewrites.
// It does NOT mutate the target; use ApplyPlan for that.
func ReconcileWithPlan(spec *Spec) (*Plan, error) {
	if spec == nil || spec.Target == nil || spec.Source == nil {
		return nil, errors.New("reconcile spec requires a target and a source table")
	}

	targetKey, err := ResolveKeyColumn(spec.Target, SideTarget, spec.TargetKey)
	if err != nil {
		return nil, err
	}

	index, err := BuildIndex(spec.Source, spec.SourceKey)
	if err != nil {
		return nil, err
	}

	fields, skipped := ResolveFields(spec.Target, spec.Source, spec.Fields)
	required := RequiredCells(targetKey, fields)

	plan := &Plan{
		Results: make([]RowResult, 0, len(spec.Target.Rows)),
		Fields:  fields,
		Skipped: skipped,
	}
	plan.Summary.TotalRows = len(spec.Target.Rows)
	plan.Summary.SourceRows = index.Len()
	plan.Summary.SkippedFields = len(skipped)
	plan.Summary.DuplicateKeys = len(index.Duplicates())

	for i, row := range spec.Target.Rows {
		result := RowResult{Row: i}
		result.Key, _ = RowKey(row, targetKey)

		if row.Len() < required {
			result.Status = RowRagged
			plan.Summary.Ragged++
			plan.Results = append(plan.Results, result)
			continue
		}

		source, ok := index.Match(row, targetKey)
		if !ok {
			result.Status = RowUnmatched
			plan.Summary.Unmatched++
			plan.Results = append(plan.Results, result)
			continue
		}

		result.Status = RowMatched
		plan.Summary.Matched++

		actions, missing := planRow(row, source, result.Key, i, fields)
		result.Skipped = missing
		for _, a := range actions {
			result.Changes = append(result.Changes, a.Change)
		}
		if len(actions) > 0 {
			plan.Summary.ChangedRows++
		}
		plan.Actions = append(plan.Actions, actions...)
		plan.Results = append(plan.Results, result)
	}
	plan.Summary.Changes = len(plan.Actions)

	return plan, nil
}

// ApplyPlan executes the actions in a plan.
// Returns the number of actions executed and any error encountered.
// Nothing is executed when opts.DryRun is set.
func ApplyPlan(plan *Plan, opts ReconcileOptions) (executed int, err error) {
	if opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionRewriteCell:
			if action.cell == nil {
				return executed, fmt.Errorf("action for %q has no target cell", action.Key)
			}
			if err := action.cell.SetInnerHTML(action.markup); err != nil {
				return executed, fmt.Errorf("failed to rewrite %q of %q: %w", action.Change.Field, action.Key, err)
			}
			executed++
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(spec *Spec, opts ReconcileOptions) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(spec)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(plan, opts)
	return plan, executed, err
}
