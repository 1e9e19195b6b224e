package cmd

import (
	"fmt"
	"os"

	"md-table-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "md-table-sync",
	Short: "Sync columns between HTML tables in markdown documents",
	Long: `md-table-sync copies selected columns from a source markdown table into a
target markdown table, matching rows by a key column.

Both tables are raw HTML tables placed after a literal heading. Everything
outside the target table is written back unchanged. Documents may be local
paths or s3://bucket/key locations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
