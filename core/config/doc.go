// Package config provides configuration management for the moderation backend.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key and record store backend
//   - Firestore: project, credentials, emulator and collection names
//   - Database: SQL connection details for the sql backend
//   - Storage: S3/MinIO credentials for images and the audit journal
//   - Log: Logging level and format
//   - Moderation: queue loading tuning
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
