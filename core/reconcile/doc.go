// Package reconcile matches the rows of a target table against the rows of a
// source table by a key column and synchronizes mapped columns from source to
// target.
//
// # Architecture
//
// The reconcile system consists of three steps:
//
// 1. Index: the source table is indexed by the trimmed plain text of its key
// column. Rows are visited in document order and the first row wins for a
// duplicated key.
//
// 2. Plan: every target row is classified (matched, unmatched, ragged) and, for
// matched rows, each resolved field mapping is compared by trimmed inner markup.
// Differences become rewrite actions. Planning never mutates the target table.
//
// 3. Apply: planned actions overwrite the inner markup of target cells with the
// raw inner markup of the source cells. Dry-run plans are never applied.
//
// # Skip Policies
//
// Field mappings whose column names cannot be resolved in either header are
// skipped and reported in the plan. Target rows shorter than the highest column
// the run needs are passed through untouched. A source row without the mapped
// cell skips that mapping for the matched target row. None of these are errors.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Target:    target,
//	    Source:    source,
//	    TargetKey: "Role",
//	    SourceKey: "Role",
//	    Fields:    []reconcile.FieldMapping{{Target: "Description", Source: "Description"}},
//	}
//
//	plan, executed, err := reconcile.ReconcileAndApply(spec, reconcile.ReconcileOptions{})
package reconcile
