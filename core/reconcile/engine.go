package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyAction is returned when an action has no Apply function.
var ErrEmptyAction = errors.New("action has no apply function")

// StepError reports the action that stopped a Sequence.
type StepError struct {
	// Index is the position of the failed action.
	Index int
	// Action is the failed action.
	Action Action
	// Err is the underlying failure.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s): %v", e.Index, e.Action.Type, e.Action.Key, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Apply executes the actions of seq in order.
// It returns the number of committed actions and, on failure, a *StepError.
// The caller's context is checked before each action; a cancelled context
// stops the sequence like any other failure.
func Apply(ctx context.Context, seq *Sequence) (executed int, err error) {
	report, err := Run(ctx, seq)
	return len(report.Executed), err
}

// Run executes seq like Apply and returns the full report.
func Run(ctx context.Context, seq *Sequence) (Report, error) {
	report := Report{
		Name:          seq.Name,
		Planned:       len(seq.Actions),
		Executed:      make([]Action, 0, len(seq.Actions)),
		LastCompleted: -1,
	}

	for i, action := range seq.Actions {
		if err := ctx.Err(); err != nil {
			return report, &StepError{Index: i, Action: action, Err: err}
		}
		if action.Apply == nil {
			return report, &StepError{Index: i, Action: action, Err: ErrEmptyAction}
		}
		if err := action.Apply(ctx); err != nil {
			return report, &StepError{Index: i, Action: action, Err: err}
		}
		report.Executed = append(report.Executed, action)
		report.LastCompleted = i
	}

	return report, nil
}
