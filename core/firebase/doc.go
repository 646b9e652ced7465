// Package firebase connects to the hosted Firestore database that backs the
// lost-and-found application.
//
// The mobile client writes active animal postings and pending review requests into
// Firestore; the moderation backend reads the review queues and applies operator
// decisions against the same collections. Collection names are configurable and
// default to the ones used by the production project.
//
// # Emulator
//
// Setting EmulatorHost (or FIRESTORE_EMULATOR_HOST) points the client at a local
// emulator, which is how the store integration tests run.
//
// # Usage
//
//	client, err := firebase.Connect(ctx, cfg.Firestore)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
package firebase
