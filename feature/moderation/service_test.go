package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"animal-search-admin/core/storage/mocks"
	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingStore holds DeleteMatchRequest until release is closed.
type blockingStore struct {
	store.RecordStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) DeleteMatchRequest(ctx context.Context, id string) error {
	b.entered <- struct{}{}
	<-b.release
	return b.RecordStore.DeleteMatchRequest(ctx, id)
}

func newTestService(s store.RecordStore, journal *Journal) *Service {
	return NewService(newTestLoader(s, 0), NewEngine(s, zap.NewNop()), journal, zap.NewNop())
}

func TestService_InFlightGuard(t *testing.T) {
	ctx := context.Background()
	bs := &blockingStore{RecordStore: seededStore(t), entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc := newTestService(bs, NewJournal(nil, "", "audit"))

	done := make(chan error, 1)
	go func() {
		_, err := svc.ResolveMatch(ctx, "r1", "a1", models.DecisionReject)
		done <- err
	}()
	<-bs.entered

	_, err := svc.ResolveMatch(ctx, "r1", "a1", models.DecisionReject)
	assert.ErrorIs(t, err, ErrInFlight)

	// A different request is independent.
	out, err := svc.ResolveDuplicate(ctx, "d1", "a2", nil, models.DecisionReject)
	require.NoError(t, err)
	assert.True(t, out.Resolved())

	close(bs.release)
	require.NoError(t, <-done)

	out, err = svc.ResolveMatch(ctx, "r1", "a1", models.DecisionReject)
	require.NoError(t, err)
	assert.True(t, out.AlreadyResolved)
}

func TestService_JournalsResolvedDecisions(t *testing.T) {
	ctx := WithRayID(context.Background(), "ray-42")
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "animalsearch", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "audit/matches/")
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil).Once()

	svc := newTestService(seededStore(t), NewJournal(client, "animalsearch", "audit"))

	_, err := svc.ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	require.NoError(t, err)

	// Already resolved: nothing new to journal.
	_, err = svc.ResolveMatch(ctx, "r1", "a1", models.DecisionAccept)
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestService_JournalFailureIsNotFatal(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	svc := newTestService(seededStore(t), NewJournal(client, "animalsearch", "audit"))
	out, err := svc.ResolveMatch(context.Background(), "r1", "a1", models.DecisionReject)
	require.NoError(t, err)
	assert.True(t, out.Resolved())
}

func TestService_PlanThenApply(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := newTestService(s, NewJournal(nil, "", "audit"))

	plan, err := svc.PlanDuplicate(ctx, "d1", "", nil, models.DecisionAccept)
	require.NoError(t, err)
	assert.Len(t, plan.Describe(), 3)

	out, err := svc.Apply(ctx, plan)
	require.NoError(t, err)
	assert.True(t, out.RecordCreated)

	_, err = s.GetDuplicateRequest(ctx, "d1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_ApplyStalePlan(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	client := new(mocks.Client)
	svc := newTestService(s, NewJournal(client, "animalsearch", "audit"))
	before := s.ActiveRecordCount()

	plan, err := svc.PlanDuplicate(ctx, "d1", "", nil, models.DecisionAccept)
	require.NoError(t, err)
	require.False(t, plan.Outcome.AlreadyResolved)

	// Another moderator resolves the request between plan and apply.
	require.NoError(t, s.DeleteDuplicateRequest(ctx, "d1"))

	out, err := svc.Apply(ctx, plan)
	require.NoError(t, err)
	assert.True(t, out.AlreadyResolved)
	assert.False(t, out.RecordCreated)
	assert.Equal(t, -1, out.LastCompleted)

	_, err = s.GetActiveRecord(ctx, NewRecordID("d1"))
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetActiveRecord(ctx, "a2")
	assert.NoError(t, err)
	assert.Equal(t, before, s.ActiveRecordCount())
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ApplyRefreshFailure(t *testing.T) {
	ctx := context.Background()
	fs := newFaultyStore(seededStore(t))
	svc := newTestService(fs, NewJournal(nil, "", "audit"))

	plan, err := svc.PlanMatch(ctx, "r1", "a1", models.DecisionReject)
	require.NoError(t, err)

	fs.setFail("GetMatchRequest", errUnavailable)
	_, err = svc.Apply(ctx, plan)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = fs.RecordStore.GetMatchRequest(ctx, "r1")
	assert.NoError(t, err)
}

func TestService_LoadQueueDelegates(t *testing.T) {
	svc := newTestService(seededStore(t), NewJournal(nil, "", "audit"))
	items, err := svc.LoadQueue(context.Background(), models.QueueMatches)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.AuditLog(context.Background(), models.QueueMatches, time.Now())
	assert.Error(t, err)
}
