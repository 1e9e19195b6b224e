package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"md-table-sync/feature/tablesync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTarget = "## Roles\n\n<table><tr><th>Role</th><th>Description</th></tr><tr><td>R1</td><td>old</td></tr></table>\n"

const cliSource = "## Roles\n\n<table><tr><th>Role</th><th>Description</th></tr><tr><td>R1</td><td>new</td></tr></table>\n"

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		fieldFlags = nil
		heading, headingSource, headingTarget = "", "", ""
		keyColumn, keyTarget, keySource = "", "", ""
		verbose, dryRun = false, false
		reportPath = ""
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "roles.md")
	source := filepath.Join(dir, "roles.en.md")
	require.NoError(t, os.WriteFile(target, []byte(cliTarget), 0o644))
	require.NoError(t, os.WriteFile(source, []byte(cliSource), 0o644))
	return target, source
}

func TestRootCmd_Sync(t *testing.T) {
	target, source := writeDocs(t)

	out, err := runRoot(t, "--target", target, "--source", source, "--header", "## Roles", "--field", "Description=Description")
	require.NoError(t, err)
	assert.Equal(t, "Table updated in "+target+"\n", out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(cliTarget, "old", "new", 1), string(data))
}

func TestRootCmd_DryRun(t *testing.T) {
	target, source := writeDocs(t)

	out, err := runRoot(t, "--target", target, "--source", source, "--header", "## Roles", "--field", "Description=Description", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 1 change(s) planned")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, cliTarget, string(data))
}

func TestRootCmd_UsageErrors(t *testing.T) {
	target, source := writeDocs(t)

	tests := []struct {
		name string
		args []string
	}{
		{"NoField", []string{"--target", target, "--source", source, "--header", "## Roles"}},
		{"MalformedField", []string{"--target", target, "--source", source, "--header", "## Roles", "--field", "Description"}},
		{"HeadingMixedWithPair", []string{"--target", target, "--source", source, "--header", "## Roles", "--header-target", "## Roles", "--field", "Description=Description"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			assert.ErrorIs(t, err, tablesync.ErrUsage)

			data, readErr := os.ReadFile(target)
			require.NoError(t, readErr)
			assert.Equal(t, cliTarget, string(data))
		})
	}
}

func TestRootCmd_ReportFailureStillReportsTargetUpdate(t *testing.T) {
	target, source := writeDocs(t)
	report := filepath.Join(t.TempDir(), "missing", "report.yaml")

	out, err := runRoot(t, "--target", target, "--source", source, "--header", "## Roles", "--field", "Description=Description", "--report", report)
	assert.ErrorIs(t, err, tablesync.ErrReportNotWritten)
	assert.Equal(t, "Table updated in "+target+"\n", out)

	data, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, strings.Replace(cliTarget, "old", "new", 1), string(data))
}
