// Package sqlstore is the GORM implementation of store.RecordStore.
//
// It keeps the three moderation collections as tables (active_records,
// match_requests, duplicate_requests). Free-form documents are stored as JSON
// text through the GORM json serializer. The same code runs on MySQL,
// PostgreSQL and SQLite; tests use in-memory SQLite and sqlmock.
package sqlstore
