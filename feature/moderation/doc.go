// Package moderation implements the review queues of the lost-and-found admin.
//
// Two queues are moderated. A match request claims that a found animal is an
// already listed one; a duplicate request claims that a new registration
// repeats an existing record. The operator accepts or rejects each item.
//
// # Components
//
//   - QueueLoader: reads a queue from the injected store.RecordStore and maps it
//     to PendingItems. Duplicate items need one active record lookup each; these
//     run through an errgroup bounded by Config.LookupConcurrency. A missing
//     record yields a placeholder image, a store failure fails the whole load.
//   - Engine: turns a decision into an ordered reconcile.Sequence and runs it.
//     Each step commits before the next; the first failure stops the sequence
//     and the Outcome says which prefix committed.
//   - Service: rejects a second resolution of a request that is still running
//     (KindInFlight) and journals resolved decisions to object storage.
//   - Handler: the fiber routes under /moderation.
//
// # Mutation sequences
//
//	match accept:      delete record(animal_id) -> delete request
//	match reject:      delete request
//	duplicate accept:  insert record(newData) -> delete record(existingId) -> delete request
//	duplicate reject:  delete request
//
// The request is always deleted last, so it stays visible until every other
// step has committed. The record created by a duplicate accept gets an id
// derived from the request id, which makes an operator retry after a partial
// failure land on the same document instead of creating a second one.
//
// A request that is no longer pending resolves successfully with
// AlreadyResolved set and no side effects.
package moderation
