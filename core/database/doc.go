// Package database handles SQL database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL, PostgreSQL or SQLite connections based on the application's configuration.
// The SQL backend is an alternative home for the moderation record store when the
// hosted Firestore database is not used.
//
// # Connect
//
// The Connect function establishes a connection and verifies it with a ping bounded by
// the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The integrity feature uses it to verify
// that the record store tables match the expected models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "match_requests")
package database
