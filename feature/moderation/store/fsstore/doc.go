// Package fsstore is the Cloud Firestore implementation of store.RecordStore.
//
// Collections default to the names the admin panel has always used
// (animais_perdidos, achados_pendentes, duplicatas_pendentes) and are
// configurable through firebase.Config. Missing documents map to
// store.ErrNotFound through the gRPC NotFound code; CreateActiveRecord relies
// on the Create precondition so a repeated insert reports created=false.
package fsstore
