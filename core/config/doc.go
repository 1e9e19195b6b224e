// Package config provides configuration management for md-table-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Command-line flags take precedence and are applied
// by the cmd package after loading.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials for s3:// documents
//   - Splice: blank line and trailing newline rules around a written table
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Log.Level)
package config
