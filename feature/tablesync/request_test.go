package tablesync_test

import (
	"testing"

	"md-table-sync/core/reconcile"
	"md-table-sync/feature/tablesync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() tablesync.Request {
	return tablesync.Request{
		Target:  "target.md",
		Source:  "source.md",
		Heading: "## Roles",
		Fields:  []reconcile.FieldMapping{{Target: "Description", Source: "Description"}},
	}
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *tablesync.Request)
		wantErr bool
	}{
		{"SharedHeading", func(r *tablesync.Request) {}, false},
		{"SeparateHeadings", func(r *tablesync.Request) {
			r.Heading = ""
			r.HeadingSource = "## Roles"
			r.HeadingTarget = "## Роли"
		}, false},
		{"MissingTarget", func(r *tablesync.Request) { r.Target = "" }, true},
		{"BlankSource", func(r *tablesync.Request) { r.Source = "   " }, true},
		{"NoHeading", func(r *tablesync.Request) { r.Heading = "" }, true},
		{"HeadingMixedWithPair", func(r *tablesync.Request) { r.HeadingTarget = "## Роли" }, true},
		{"HalfPair", func(r *tablesync.Request) {
			r.Heading = ""
			r.HeadingSource = "## Roles"
		}, true},
		{"NoFields", func(r *tablesync.Request) { r.Fields = nil }, true},
		{"IncompleteField", func(r *tablesync.Request) {
			r.Fields = append(r.Fields, reconcile.FieldMapping{Target: "Note"})
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tablesync.ErrUsage)

			var usage *tablesync.UsageError
			assert.ErrorAs(t, err, &usage)
		})
	}
}

func TestRequest_EffectiveHeadingsAndKeys(t *testing.T) {
	req := validRequest()
	assert.Equal(t, "## Roles", req.SourceHeading())
	assert.Equal(t, "## Roles", req.TargetHeading())
	assert.Equal(t, "", req.TargetKey())
	assert.Equal(t, "", req.SourceKey())

	req.Heading = ""
	req.HeadingSource = "## Roles"
	req.HeadingTarget = "## Роли"
	req.Key = "Role"
	req.KeySource = "Code"
	assert.Equal(t, "## Roles", req.SourceHeading())
	assert.Equal(t, "## Роли", req.TargetHeading())
	assert.Equal(t, "Role", req.TargetKey())
	assert.Equal(t, "Code", req.SourceKey())
}

func TestParseFieldMapping(t *testing.T) {
	tests := []struct {
		input   string
		want    reconcile.FieldMapping
		wantErr bool
	}{
		{"Description=Description", reconcile.FieldMapping{Target: "Description", Source: "Description"}, false},
		{" Описание = Description ", reconcile.FieldMapping{Target: "Описание", Source: "Description"}, false},
		{"Description", reconcile.FieldMapping{}, true},
		{"A=B=C", reconcile.FieldMapping{}, true},
		{"=Description", reconcile.FieldMapping{}, true},
		{"Description= ", reconcile.FieldMapping{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := tablesync.ParseFieldMapping(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tablesync.ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFieldMappings(t *testing.T) {
	got, err := tablesync.ParseFieldMappings([]string{"Description=Text", "Note=Note"})
	require.NoError(t, err)
	assert.Equal(t, []reconcile.FieldMapping{
		{Target: "Description", Source: "Text"},
		{Target: "Note", Source: "Note"},
	}, got)

	_, err = tablesync.ParseFieldMappings([]string{"Description=Text", "Note"})
	assert.ErrorIs(t, err, tablesync.ErrUsage)
}
