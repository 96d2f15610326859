// Package config provides configuration management for chart-catalog.
//
// It utilizes Viper for loading configuration from environment variables,
// config files (config.yaml), and command-line flags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for the catalog archive
//   - Storage: S3/MinIO credentials and bucket settings for publishing
//   - Log: Logging level and format
//   - Feeds: upstream song and community dataset endpoints
//   - Pipeline: data and output directories of the conversion run
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
