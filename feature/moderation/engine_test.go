package moderation

import (
	"context"
	"errors"
	"testing"

	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"
	"animal-search-admin/feature/moderation/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errUnavailable = errors.New("rpc error: code = Unavailable")

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.PutActiveRecord(ctx, models.ActiveRecord{ID: "a1", Fields: map[string]any{"tipo": "gato", "imagem_url": "u1"}}))
	require.NoError(t, s.PutActiveRecord(ctx, models.ActiveRecord{ID: "a2", Fields: map[string]any{"tipo": "cão", "cor": "marrom"}}))
	require.NoError(t, s.PutMatchRequest(ctx, models.MatchRequest{ID: "r1", AnimalID: "a1", OldImageURL: "u1", NewImageURL: "u2"}))
	require.NoError(t, s.PutDuplicateRequest(ctx, models.DuplicateRequest{
		ID: "d1", ExistingID: "a2", NewData: map[string]any{"tipo": "cão", "cor": "preto"},
	}))
	return s
}

func TestResolveMatch_Accept(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	e := NewEngine(s, zap.NewNop())

	out, err := e.ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	require.NoError(t, err)

	assert.True(t, out.Resolved())
	assert.Equal(t, []string{"delete_record a1", "delete_request r1"}, out.Steps)
	assert.Equal(t, 1, out.LastCompleted)

	_, err = s.GetActiveRecord(ctx, "a1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetMatchRequest(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveMatch_Reject(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	e := NewEngine(s, zap.NewNop())
	before := s.ActiveRecordCount()

	out, err := e.ResolveMatch(ctx, "r1", "a1", models.DecisionReject)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete_request r1"}, out.Steps)
	assert.Equal(t, before, s.ActiveRecordCount())
	_, err = s.GetActiveRecord(ctx, "a1")
	assert.NoError(t, err)
	_, err = s.GetMatchRequest(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveDuplicate_Accept(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	e := NewEngine(s, zap.NewNop())
	before := s.ActiveRecordCount()

	out, err := e.ResolveDuplicate(ctx, "d1", "a2", map[string]any{"tipo": "cão", "cor": "preto"}, models.DecisionAccept)
	require.NoError(t, err)

	assert.True(t, out.RecordCreated)
	assert.Equal(t, NewRecordID("d1"), out.CreatedRecordID)
	assert.Equal(t, 2, out.LastCompleted)

	rec, err := s.GetActiveRecord(ctx, out.CreatedRecordID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tipo": "cão", "cor": "preto"}, rec.Fields)

	_, err = s.GetActiveRecord(ctx, "a2")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetDuplicateRequest(ctx, "d1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, before, s.ActiveRecordCount())
}

func TestResolveDuplicate_Reject(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	e := NewEngine(s, zap.NewNop())
	before := s.ActiveRecords()

	out, err := e.ResolveDuplicate(ctx, "d1", "a2", map[string]any{"tipo": "cão", "cor": "preto"}, models.DecisionReject)
	require.NoError(t, err)

	assert.False(t, out.RecordCreated)
	assert.Equal(t, []string{"delete_request d1"}, out.Steps)
	assert.Equal(t, before, s.ActiveRecords())
	_, err = s.GetDuplicateRequest(ctx, "d1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolve_Idempotent(t *testing.T) {
	ctx := context.Background()

	t.Run("Match", func(t *testing.T) {
		for _, d := range []models.Decision{models.DecisionAccept, models.DecisionReject} {
			s := seededStore(t)
			e := NewEngine(s, zap.NewNop())

			_, err := e.ResolveMatch(ctx, "r1", "a1", d)
			require.NoError(t, err)
			count := s.ActiveRecordCount()

			out, err := e.ResolveMatch(ctx, "r1", "a1", d)
			require.NoError(t, err)
			assert.True(t, out.AlreadyResolved)
			assert.Empty(t, out.Steps)
			assert.Equal(t, count, s.ActiveRecordCount())
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		for _, d := range []models.Decision{models.DecisionAccept, models.DecisionReject} {
			s := seededStore(t)
			e := NewEngine(s, zap.NewNop())
			payload := map[string]any{"tipo": "cão", "cor": "preto"}

			_, err := e.ResolveDuplicate(ctx, "d1", "a2", payload, d)
			require.NoError(t, err)
			records := s.ActiveRecords()

			out, err := e.ResolveDuplicate(ctx, "d1", "a2", payload, d)
			require.NoError(t, err)
			assert.True(t, out.AlreadyResolved)
			assert.False(t, out.RecordCreated)
			assert.Equal(t, records, s.ActiveRecords())
		}
	})
}

func TestResolve_FillsMissingContext(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	e := NewEngine(s, zap.NewNop())

	out, err := e.ResolveMatch(ctx, "r1", "", models.DecisionAccept)
	require.NoError(t, err)
	assert.Contains(t, out.Steps, "delete_record a1")

	out, err = e.ResolveDuplicate(ctx, "d1", "", nil, models.DecisionAccept)
	require.NoError(t, err)
	assert.Contains(t, out.Steps, "delete_record a2")

	rec, err := s.GetActiveRecord(ctx, NewRecordID("d1"))
	require.NoError(t, err)
	assert.Equal(t, "preto", rec.Fields["cor"])
}

func TestResolve_InvalidInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(e *Engine) error
	}{
		{"EmptyRequestID", func(e *Engine) error {
			_, err := e.ResolveMatch(ctx, " ", "a1", models.DecisionAccept)
			return err
		}},
		{"UnknownDecision", func(e *Engine) error {
			_, err := e.ResolveMatch(ctx, "r1", "a1", models.Decision("maybe"))
			return err
		}},
		{"ContradictingAnimal", func(e *Engine) error {
			_, err := e.ResolveMatch(ctx, "r1", "a9", models.DecisionAccept)
			return err
		}},
		{"ContradictingExisting", func(e *Engine) error {
			_, err := e.ResolveDuplicate(ctx, "d1", "a1", nil, models.DecisionReject)
			return err
		}},
		{"ContradictingPayload", func(e *Engine) error {
			_, err := e.ResolveDuplicate(ctx, "d1", "a2", map[string]any{"tipo": "gato"}, models.DecisionAccept)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededStore(t)
			err := tt.run(NewEngine(s, zap.NewNop()))
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = s.GetMatchRequest(ctx, "r1")
			assert.NoError(t, err)
			_, err = s.GetDuplicateRequest(ctx, "d1")
			assert.NoError(t, err)
		})
	}
}

func TestResolve_RejectWithoutReference(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.PutMatchRequest(ctx, models.MatchRequest{ID: "r9"}))
	require.NoError(t, s.PutDuplicateRequest(ctx, models.DuplicateRequest{ID: "d9", NewData: map[string]any{"tipo": "gato"}}))
	e := NewEngine(s, zap.NewNop())
	before := s.ActiveRecordCount()

	out, err := e.ResolveMatch(ctx, "r9", "", models.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, []string{"delete_request r9"}, out.Steps)
	_, err = s.GetMatchRequest(ctx, "r9")
	assert.ErrorIs(t, err, store.ErrNotFound)

	out, err = e.ResolveDuplicate(ctx, "d9", "", nil, models.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, []string{"delete_request d9"}, out.Steps)
	_, err = s.GetDuplicateRequest(ctx, "d9")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, before, s.ActiveRecordCount())
}

func TestResolve_AcceptWithoutReference(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.PutMatchRequest(ctx, models.MatchRequest{ID: "r9"}))
	e := NewEngine(s, zap.NewNop())

	_, err := e.ResolveMatch(ctx, "r9", "", models.DecisionAccept)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.GetMatchRequest(ctx, "r9")
	assert.NoError(t, err)
}

func TestResolveDuplicate_PayloadNumbersCompareByValue(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.PutDuplicateRequest(ctx, models.DuplicateRequest{
		ID: "d1", ExistingID: "a1", NewData: map[string]any{"idade": int64(3)},
	}))

	out, err := NewEngine(s, zap.NewNop()).ResolveDuplicate(ctx, "d1", "a1", map[string]any{"idade": float64(3)}, models.DecisionAccept)
	require.NoError(t, err)
	assert.True(t, out.Resolved())
}

func TestResolveDuplicate_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.PutDuplicateRequest(ctx, models.DuplicateRequest{ID: "d1", ExistingID: "a1"}))

	_, err := NewEngine(s, zap.NewNop()).ResolveDuplicate(ctx, "d1", "", nil, models.DecisionAccept)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_MissingReferenceIsWarning(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.DeleteActiveRecord(ctx, "a1"))
	e := NewEngine(s, zap.NewNop())

	out, err := e.ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	require.NoError(t, err)
	assert.True(t, out.Resolved())
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], string(KindReferenceNotFound))
}

func TestResolve_PreReadFailure(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	fs := newFaultyStore(s)
	fs.setFail("GetMatchRequest", errUnavailable)

	_, err := NewEngine(fs, zap.NewNop()).ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 2, s.ActiveRecordCount())

	fs.setFail("GetMatchRequest", nil)
	fs.setFail("GetActiveRecord", errUnavailable)
	_, err = NewEngine(fs, zap.NewNop()).ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestResolveDuplicate_PartialFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		failMethod  string
		wantKind    Kind
		wantLast    int
		wantCreated bool
	}{
		{"InsertFails", "CreateActiveRecord", KindStoreUnavailable, -1, false},
		{"DeleteOldFails", "DeleteActiveRecord", KindPartialSequenceFailure, 0, true},
		{"DeleteRequestFails", "DeleteDuplicateRequest", KindPartialSequenceFailure, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededStore(t)
			fs := newFaultyStore(s)
			fs.setFail(tt.failMethod, errUnavailable)
			e := NewEngine(fs, zap.NewNop())

			out, err := e.ResolveDuplicate(ctx, "d1", "a2", nil, models.DecisionAccept)
			require.Error(t, err)
			assert.ErrorIs(t, err, errUnavailable)
			assert.Equal(t, tt.wantKind, KindOf(err))

			var modErr *Error
			require.ErrorAs(t, err, &modErr)
			require.NotNil(t, modErr.Outcome)
			assert.Equal(t, tt.wantLast, modErr.Outcome.LastCompleted)
			assert.Equal(t, tt.wantLast, out.LastCompleted)
			assert.Equal(t, tt.wantCreated, out.RecordCreated)
			assert.False(t, out.Resolved())

			// The request stays pending until the full sequence commits.
			_, err = s.GetDuplicateRequest(ctx, "d1")
			assert.NoError(t, err)

			// Operator retry completes without a second new record.
			fs.setFail(tt.failMethod, nil)
			out, err = e.ResolveDuplicate(ctx, "d1", "a2", nil, models.DecisionAccept)
			require.NoError(t, err)
			assert.True(t, out.Resolved())

			var created int
			for _, r := range s.ActiveRecords() {
				if r.Fields["cor"] == "preto" {
					created++
				}
			}
			assert.Equal(t, 1, created)
			_, err = s.GetActiveRecord(ctx, "a2")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestResolveMatch_PartialFailure(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	fs := newFaultyStore(s)
	fs.setFail("DeleteMatchRequest", errUnavailable)

	out, err := NewEngine(fs, zap.NewNop()).ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	assert.ErrorIs(t, err, ErrPartialSequenceFailure)
	assert.Equal(t, 0, out.LastCompleted)
	assert.Equal(t, []string{"delete_record a1"}, out.Steps)

	_, err = s.GetMatchRequest(ctx, "r1")
	assert.NoError(t, err, "request must be re-surfaced after a partial failure")
}

func TestPlanMatch_Describe(t *testing.T) {
	s := seededStore(t)
	plan, err := NewEngine(s, zap.NewNop()).PlanMatch(context.Background(), "r1", "", models.DecisionAccept)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1. delete_record a1 (match accepted)",
		"2. delete_request r1 (accepted)",
	}, plan.Describe())

	// Planning has no side effects.
	assert.Equal(t, 2, s.ActiveRecordCount())
}

func TestNewRecordID(t *testing.T) {
	assert.Equal(t, NewRecordID("d1"), NewRecordID("d1"))
	assert.NotEqual(t, NewRecordID("d1"), NewRecordID("d2"))
	assert.Len(t, NewRecordID("d1"), 36)
}
