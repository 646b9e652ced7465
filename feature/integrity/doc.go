// Package integrity provides health checks for the moderation backend.
//
// The moderation feature mutates records; this package only reads them and reports
// inconsistencies an operator should know about before resolving queue items.
//
// # Checks Provided
//
//   - References: Lists pending match and duplicate requests whose referenced ActiveRecord
//     no longer exists. Resolving such an item still works; the outcome carries a warning.
//   - Structure: Checks that the bucket and the audit/ and images/ folders exist. With fix
//     enabled the bucket and folder markers are created.
//   - Schema: Compares the SQL backend tables with the GORM models of the sql store.
//
// Checks whose backend is not configured (no object storage, Firestore instead of SQL)
// report "skipped" rather than failing.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/references : Runs the reference check.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
package integrity
