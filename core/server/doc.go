// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the supported record store backends.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the record store backend
// (Firestore, SQL, in-memory).
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the cmd package to pick the moderation record store.
package server
