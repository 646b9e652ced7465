// Package models defines the moderation domain types: active records, the two
// kinds of pending requests, the renderable PendingItem and the resolution
// Outcome. Field name constants are the wire contract with the record store.
package models
