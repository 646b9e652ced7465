// Package store defines the RecordStore capability and its shared helpers.
//
// Implementations live in subpackages:
//   - memory: process-local maps, used by tests and the "memory" backend
//   - fsstore: Cloud Firestore, the production backend
//   - sqlstore: GORM over MySQL, PostgreSQL or SQLite
//
// Every implementation returns ErrNotFound (possibly wrapped) for missing
// documents and treats the delete of a missing document as success.
package store
