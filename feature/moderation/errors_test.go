package moderation

import (
	"errors"
	"fmt"
	"testing"

	"animal-search-admin/feature/moderation/models"

	"github.com/stretchr/testify/assert"
)

func TestError_IsAndAs(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindStoreUnavailable, Op: "load", Err: cause})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInFlight)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindStoreUnavailable, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
}

func TestError_Message(t *testing.T) {
	err := &Error{
		Kind:      KindPartialSequenceFailure,
		Op:        "resolve duplicate",
		RequestID: "d1",
		Outcome: &models.Outcome{
			Planned:         3,
			Steps:           []string{"insert_record"},
			RecordCreated:   true,
			CreatedRecordID: "n1",
		},
		Err: errors.New("unavailable"),
	}

	assert.Equal(t,
		"resolve duplicate: PARTIAL_SEQUENCE_FAILURE (request d1) after 1/3 steps, new record n1 already created: unavailable",
		err.Error())
}
