// Package tablesync copies selected columns from a source markdown table into a
// target markdown table.
//
// Both tables are raw HTML tables placed after a literal heading. A run reads the
// two documents, locates and parses each table, matches target rows to source rows
// by a key column, rewrites the mapped cells of matched rows and splices the
// re-serialized target table back into the target document. Everything outside the
// table span is written back byte for byte.
//
// # Components
//
//   - Request: run parameters, validated before any I/O.
//   - Service: orchestrates read, locate, parse, reconcile, splice and write.
//   - Report: optional change log written as YAML or JSON.
//
// # Usage
//
//	svc := tablesync.NewService(store, log, cfg.Splice)
//	res, err := svc.Sync(ctx, tablesync.Request{
//	    Target:  "docs/roles.md",
//	    Source:  "docs/roles.en.md",
//	    Heading: "## Roles",
//	    Fields:  []reconcile.FieldMapping{{Target: "Description", Source: "Description"}},
//	})
package tablesync
