package tablesync

import (
	"context"
	"fmt"

	"md-table-sync/core/logger"
	"md-table-sync/core/markdown"
	"md-table-sync/core/reconcile"
	"md-table-sync/core/storage"
	"md-table-sync/core/table"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service runs table syncs against a document store.
type Service struct {
	store  storage.Store
	logger *zap.Logger
	layout markdown.Config
}

// NewService creates a new sync service.
func NewService(store storage.Store, logger *zap.Logger, layout markdown.Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		layout: layout,
	}
}

// Result describes a finished run.
type Result struct {
	// RunID correlates the run's log entries and report.
	RunID string
	// Target is the location of the target document.
	Target string
	// Plan holds per-row decisions and the applied rewrites.
	Plan *reconcile.Plan
	// Changes lists every rewritten cell in row order.
	Changes []reconcile.Change
	// Written is false for dry runs.
	Written bool
	// Document is the target document after the sync.
	Document string
}

// located is a parsed table together with where it sits in its document.
type located struct {
	doc   string
	span  markdown.TableSpan
	table *table.Table
}

// Sync copies the mapped columns of the source table into the target table and
// writes the target document back. Nothing is written if any step before the
// target write fails. A dry run computes the same document but leaves the target
// untouched. When only the report fails, the result is returned together with an
// error wrapping ErrReportNotWritten.
func (s *Service) Sync(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	l := logger.WithRunID(s.logger, runID)

	sourceDoc, err := s.store.Read(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document: %w", err)
	}
	targetDoc, err := s.store.Read(ctx, req.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to read target document: %w", err)
	}

	source, err := s.load(l, string(sourceDoc), req.SourceHeading(), reconcile.SideSource)
	if err != nil {
		return nil, err
	}
	target, err := s.load(l, string(targetDoc), req.TargetHeading(), reconcile.SideTarget)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.ReconcileWithPlan(&reconcile.Spec{
		Target:    target.table,
		Source:    source.table,
		TargetKey: req.TargetKey(),
		SourceKey: req.SourceKey(),
		Fields:    req.Fields,
	})
	if err != nil {
		return nil, err
	}
	logPlan(l, plan)

	// A run without rewrites writes the target back as read. Rendering would
	// normalize untouched markup such as &nbsp; and <br>.
	doc := target.doc
	executed := 0
	if len(plan.Actions) > 0 {
		doc, executed, err = s.rewrite(req, target, plan)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		RunID:    runID,
		Target:   req.Target,
		Plan:     plan,
		Changes:  plan.Changes(),
		Document: doc,
	}

	if req.DryRun {
		l.Debug("dry run, target not written", zap.Int("changes", len(res.Changes)))
	} else {
		if err := s.store.Write(ctx, req.Target, []byte(doc)); err != nil {
			return nil, fmt.Errorf("failed to write target document: %w", err)
		}
		res.Written = true
		l.Debug("target written", zap.String("target", req.Target), zap.Int("rewrites", executed))
	}

	if req.ReportPath != "" {
		if err := s.writeReport(ctx, req, res); err != nil {
			l.Warn("report not written", zap.String("report", req.ReportPath), zap.Bool("target_written", res.Written), zap.Error(err))
			return res, err
		}
		l.Debug("report written", zap.String("report", req.ReportPath))
	}

	return res, nil
}

// rewrite applies plan to the target tree and splices the rendered table into
// the target document. The tree is private to this run, so a dry run still
// produces the document that would have been written.
func (s *Service) rewrite(req Request, target *located, plan *reconcile.Plan) (string, int, error) {
	executed, err := reconcile.ApplyPlan(plan, reconcile.ReconcileOptions{})
	if err != nil {
		return "", 0, err
	}

	rendered, err := target.table.Render()
	if err != nil {
		return "", 0, fmt.Errorf("failed to render target table: %w", err)
	}
	doc, err := markdown.Splice(target.doc, req.TargetHeading(), target.span, rendered, s.layout)
	if err != nil {
		return "", 0, markdown.WithLabel(err, string(reconcile.SideTarget))
	}
	return doc, executed, nil
}

func (s *Service) load(l *zap.Logger, doc, heading string, side reconcile.Side) (*located, error) {
	span, err := markdown.Locate(doc, heading)
	if err != nil {
		return nil, markdown.WithLabel(err, string(side))
	}

	t, err := table.Parse(markdown.Extract(doc, span))
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", side, err)
	}

	l.Debug("table located",
		zap.String("side", string(side)),
		zap.String("heading", heading),
		zap.Int("heading_start", span.HeadingStart),
		zap.Int("start", span.Start),
		zap.Int("end", span.End),
		zap.Strings("headers", t.Headers),
		zap.Int("rows", len(t.Rows)),
	)
	return &located{doc: doc, span: span, table: t}, nil
}

func logPlan(l *zap.Logger, plan *reconcile.Plan) {
	for _, f := range plan.Skipped {
		l.Debug("field mapping skipped",
			zap.String("field", f.Mapping.String()),
			zap.String("reason", f.Reason),
		)
	}

	for _, r := range plan.Results {
		fields := []zap.Field{
			zap.Int("row", r.Row),
			zap.String("key", r.Key),
			zap.String("status", string(r.Status)),
			zap.Int("changes", len(r.Changes)),
		}
		if len(r.Skipped) > 0 {
			fields = append(fields, zap.Strings("skipped", r.Skipped))
		}
		l.Debug("row reconciled", fields...)
	}

	s := plan.Summary
	l.Debug("reconciliation summary",
		zap.Int("total_rows", s.TotalRows),
		zap.Int("source_rows", s.SourceRows),
		zap.Int("matched", s.Matched),
		zap.Int("unmatched", s.Unmatched),
		zap.Int("ragged", s.Ragged),
		zap.Int("changed_rows", s.ChangedRows),
		zap.Int("changes", s.Changes),
		zap.Int("skipped_fields", s.SkippedFields),
		zap.Int("duplicate_keys", s.DuplicateKeys),
	)
}
