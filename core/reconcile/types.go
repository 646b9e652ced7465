package reconcile

import "context"

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionInsertRecord creates an active record.
	ActionInsertRecord ActionType = "insert_record"
	// ActionDeleteRecord deletes an active record.
	ActionDeleteRecord ActionType = "delete_record"
	// ActionDeleteRequest removes a pending request from its queue.
	ActionDeleteRequest ActionType = "delete_request"
)

// Action represents one planned mutation of a Sequence.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the identifier of the document the action touches.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason,omitempty"`

	// Apply commits the mutation. It must be safe to call again after a failure.
	Apply func(ctx context.Context) error `json:"-"`
}

// Sequence is an ordered list of actions. Each action commits before the next
// starts and the first failure stops the sequence without rollback.
type Sequence struct {
	// Name identifies the sequence in logs and reports (e.g. "match/accept").
	Name string `json:"name"`

	// Actions are executed in slice order.
	Actions []Action `json:"actions"`
}

// Add appends an action and returns the sequence for chaining.
func (s *Sequence) Add(a Action) *Sequence {
	s.Actions = append(s.Actions, a)
	return s
}

// Report describes how far a Sequence got.
type Report struct {
	// Name is the sequence name.
	Name string `json:"name"`

	// Planned is the number of actions in the sequence.
	Planned int `json:"planned"`

	// Executed lists the committed actions in order.
	Executed []Action `json:"executed"`

	// LastCompleted is the index of the last committed action, -1 when none.
	LastCompleted int `json:"last_completed"`
}

// Complete reports whether every planned action committed.
func (r Report) Complete() bool {
	return len(r.Executed) == r.Planned
}
