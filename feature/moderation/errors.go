package moderation

import (
	"errors"
	"fmt"

	"animal-search-admin/feature/moderation/models"
)

// Kind classifies moderation failures.
type Kind string

const (
	// KindStoreUnavailable means a store read or write failed.
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	// KindReferenceNotFound means a referenced ActiveRecord is missing.
	KindReferenceNotFound Kind = "REFERENCE_NOT_FOUND"
	// KindPartialSequenceFailure means a resolution failed after committing a prefix.
	KindPartialSequenceFailure Kind = "PARTIAL_SEQUENCE_FAILURE"
	// KindInvalidInput means the caller sent an unusable or contradicting request.
	KindInvalidInput Kind = "INVALID_INPUT"
	// KindInFlight means the same request is already being resolved.
	KindInFlight Kind = "IN_FLIGHT"
)

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrStoreUnavailable       = &Error{Kind: KindStoreUnavailable}
	ErrReferenceNotFound      = &Error{Kind: KindReferenceNotFound}
	ErrPartialSequenceFailure = &Error{Kind: KindPartialSequenceFailure}
	ErrInvalidInput           = &Error{Kind: KindInvalidInput}
	ErrInFlight               = &Error{Kind: KindInFlight}
)

// Error is the typed error returned by the loader, engine and service.
type Error struct {
	Kind      Kind
	Op        string
	RequestID string
	// Outcome is set by the engine once a sequence has started.
	Outcome *models.Outcome
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request %s)", e.RequestID)
	}
	if e.Outcome != nil && e.Outcome.Planned > 0 {
		msg += fmt.Sprintf(" after %d/%d steps", len(e.Outcome.Steps), e.Outcome.Planned)
		if e.Outcome.RecordCreated {
			msg += fmt.Sprintf(", new record %s already created", e.Outcome.CreatedRecordID)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, ErrInFlight) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err, or "" when err is not a moderation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func invalidInput(op, requestID, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, RequestID: requestID, Err: fmt.Errorf(format, args...)}
}
