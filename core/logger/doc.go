// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a verbose development mode
// (debug level, with caller and timestamps) and a quieter production mode.
//
// # Run Correlation
//
// Every sync run carries a run_id. The WithRunID helper attaches it to the
// logger so all diagnostics of one run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("sync started")
//
//	l := logger.WithRunID(log, runID)
//	l.Debug("table located", zap.Int("start", span.Start))
package logger
