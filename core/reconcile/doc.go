// Package reconcile executes ordered mutation sequences against external stores.
//
// A Sequence is an explicit, ordered list of Actions. Run commits them one at a
// time; the first failure stops the sequence and nothing already committed is
// rolled back. The Report says which actions committed and the index of the
// last one, so the caller can tell a clean failure from a partial one.
//
// # Usage Example
//
//	seq := &reconcile.Sequence{Name: "match/accept"}
//	seq.Add(reconcile.Action{Type: reconcile.ActionDeleteRecord, Key: animalID, Apply: deleteAnimal}).
//	    Add(reconcile.Action{Type: reconcile.ActionDeleteRequest, Key: requestID, Apply: deleteRequest})
//
//	report, err := reconcile.Run(ctx, seq)
//	var stepErr *reconcile.StepError
//	if errors.As(err, &stepErr) && report.LastCompleted >= 0 {
//	    // partial: steps 0..LastCompleted are committed
//	}
//
// Actions must be idempotent; re-running a sequence after a partial failure is
// how an operator retries.
package reconcile
