package cmd

import (
	"context"
	"fmt"

	"md-table-sync/core/config"
	"md-table-sync/core/logger"
	"md-table-sync/core/storage"
	"md-table-sync/feature/tablesync"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync run
	targetPath    string
	sourcePath    string
	heading       string
	headingSource string
	headingTarget string
	fieldFlags    []string
	keyColumn     string
	keyTarget     string
	keySource     string
	verbose       bool
	dryRun        bool
	reportPath    string
)

func init() {
	flags := RootCmd.Flags()
	flags.StringVar(&targetPath, "target", "", "Target document (path or s3://bucket/key)")
	flags.StringVar(&sourcePath, "source", "", "Source document (path or s3://bucket/key)")
	flags.StringVar(&heading, "header", "", "Heading that anchors the table in both documents")
	flags.StringVar(&headingSource, "header-source", "", "Heading that anchors the source table")
	flags.StringVar(&headingTarget, "header-target", "", "Heading that anchors the target table")
	flags.StringArrayVar(&fieldFlags, "field", nil, "Column mapping Target=Source (repeatable)")
	flags.StringVar(&keyColumn, "key", "", "Key column name in both tables (default: first column)")
	flags.StringVar(&keyTarget, "key-target", "", "Key column name in the target table")
	flags.StringVar(&keySource, "key-source", "", "Key column name in the source table")
	flags.BoolVar(&verbose, "verbose", false, "Enable debug diagnostics")
	flags.BoolVar(&dryRun, "dry-run", false, "Plan and report without writing the target")
	flags.StringVar(&reportPath, "report", "", "Write the change log to this location (.json or YAML)")

	_ = RootCmd.MarkFlagRequired("target")
	_ = RootCmd.MarkFlagRequired("source")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fields, err := tablesync.ParseFieldMappings(fieldFlags)
	if err != nil {
		return err
	}

	req := tablesync.Request{
		Target:        targetPath,
		Source:        sourcePath,
		Heading:       heading,
		HeadingSource: headingSource,
		HeadingTarget: headingTarget,
		Fields:        fields,
		Key:           keyColumn,
		KeyTarget:     keyTarget,
		KeySource:     keySource,
		DryRun:        dryRun,
		ReportPath:    reportPath,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	store := storage.NewRouter(cfg.Storage, afero.NewOsFs())
	svc := tablesync.NewService(store, l, cfg.Splice)

	res, err := svc.Sync(ctx, req)
	if res != nil {
		printOutcome(cmd, res)
	}
	if err != nil {
		return err
	}

	l.Debug("sync finished",
		zap.String("run_id", res.RunID),
		zap.Int("changes", len(res.Changes)),
		zap.Bool("written", res.Written),
	)
	return nil
}

// printOutcome reports what happened to the target, even when a later step failed.
func printOutcome(cmd *cobra.Command, res *tablesync.Result) {
	out := cmd.OutOrStdout()
	if res.Written {
		fmt.Fprintf(out, "Table updated in %s\n", res.Target)
	} else {
		fmt.Fprintf(out, "Dry run: %d change(s) planned for %s\n", len(res.Changes), res.Target)
	}
}
