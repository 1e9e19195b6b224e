package tablesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"md-table-sync/core/reconcile"

	"github.com/goccy/go-yaml"
)

// ErrReportNotWritten indicates the change log could not be written. The target
// document may already have been written when it is returned.
var ErrReportNotWritten = errors.New("report not written")

// Report is the change log of one run.
type Report struct {
	RunID   string                   `json:"run_id" yaml:"run_id"`
	Target  string                   `json:"target" yaml:"target"`
	Source  string                   `json:"source" yaml:"source"`
	DryRun  bool                     `json:"dry_run" yaml:"dry_run"`
	Written bool                     `json:"written" yaml:"written"`
	Fields  []reconcile.FieldMapping `json:"fields" yaml:"fields"`
	Summary reconcile.PlanSummary    `json:"summary" yaml:"summary"`
	Skipped []reconcile.SkippedField `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Changes []reconcile.Change       `json:"changes" yaml:"changes"`
	Rows    []reconcile.RowResult    `json:"rows" yaml:"rows"`
}

// NewReport builds the change log of res.
func NewReport(req Request, res *Result) Report {
	changes := res.Changes
	if changes == nil {
		changes = []reconcile.Change{}
	}
	return Report{
		RunID:   res.RunID,
		Target:  req.Target,
		Source:  req.Source,
		DryRun:  req.DryRun,
		Written: res.Written,
		Fields:  req.Fields,
		Summary: res.Plan.Summary,
		Skipped: res.Plan.Skipped,
		Changes: changes,
		Rows:    res.Plan.Results,
	}
}

// EncodeReport serializes r as JSON when location ends in .json, YAML otherwise.
func EncodeReport(location string, r Report) ([]byte, error) {
	if strings.EqualFold(path.Ext(location), ".json") {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.MarshalWithOptions(r, yaml.Indent(2))
}

func (s *Service) writeReport(ctx context.Context, req Request, res *Result) error {
	data, err := EncodeReport(req.ReportPath, NewReport(req, res))
	if err != nil {
		return fmt.Errorf("%w: failed to encode report: %v", ErrReportNotWritten, err)
	}
	if err := s.store.Write(ctx, req.ReportPath, data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrReportNotWritten, req.ReportPath, err)
	}
	return nil
}
