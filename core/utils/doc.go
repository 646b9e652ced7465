// Package utils provides conversion helpers for schemaless documents.
// Firestore documents and fixture payloads arrive as map[string]any; these helpers
// read fields from them without panicking on unexpected types.
package utils
