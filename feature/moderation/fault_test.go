package moderation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"
)

// faultyStore wraps a RecordStore and fails the named methods.
type faultyStore struct {
	store.RecordStore

	mu   sync.Mutex
	fail map[string]error

	lookupDelay time.Duration
	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newFaultyStore(s store.RecordStore) *faultyStore {
	return &faultyStore{RecordStore: s, fail: map[string]error{}}
}

func (f *faultyStore) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, method)
		return
	}
	f.fail[method] = err
}

func (f *faultyStore) err(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[method]
}

func (f *faultyStore) ListMatchRequests(ctx context.Context) ([]models.MatchRequest, error) {
	if err := f.err("ListMatchRequests"); err != nil {
		return nil, err
	}
	return f.RecordStore.ListMatchRequests(ctx)
}

func (f *faultyStore) ListDuplicateRequests(ctx context.Context) ([]models.DuplicateRequest, error) {
	if err := f.err("ListDuplicateRequests"); err != nil {
		return nil, err
	}
	return f.RecordStore.ListDuplicateRequests(ctx)
}

func (f *faultyStore) GetActiveRecord(ctx context.Context, id string) (*models.ActiveRecord, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		max := f.maxInflight.Load()
		if n <= max || f.maxInflight.CompareAndSwap(max, n) {
			break
		}
	}
	if f.lookupDelay > 0 {
		time.Sleep(f.lookupDelay)
	}
	if err := f.err("GetActiveRecord"); err != nil {
		return nil, err
	}
	return f.RecordStore.GetActiveRecord(ctx, id)
}

func (f *faultyStore) GetMatchRequest(ctx context.Context, id string) (*models.MatchRequest, error) {
	if err := f.err("GetMatchRequest"); err != nil {
		return nil, err
	}
	return f.RecordStore.GetMatchRequest(ctx, id)
}

func (f *faultyStore) GetDuplicateRequest(ctx context.Context, id string) (*models.DuplicateRequest, error) {
	if err := f.err("GetDuplicateRequest"); err != nil {
		return nil, err
	}
	return f.RecordStore.GetDuplicateRequest(ctx, id)
}

func (f *faultyStore) CreateActiveRecord(ctx context.Context, id string, fields map[string]any) (bool, error) {
	if err := f.err("CreateActiveRecord"); err != nil {
		return false, err
	}
	return f.RecordStore.CreateActiveRecord(ctx, id, fields)
}

func (f *faultyStore) DeleteActiveRecord(ctx context.Context, id string) error {
	if err := f.err("DeleteActiveRecord"); err != nil {
		return err
	}
	return f.RecordStore.DeleteActiveRecord(ctx, id)
}

func (f *faultyStore) DeleteMatchRequest(ctx context.Context, id string) error {
	if err := f.err("DeleteMatchRequest"); err != nil {
		return err
	}
	return f.RecordStore.DeleteMatchRequest(ctx, id)
}

func (f *faultyStore) DeleteDuplicateRequest(ctx context.Context, id string) error {
	if err := f.err("DeleteDuplicateRequest"); err != nil {
		return err
	}
	return f.RecordStore.DeleteDuplicateRequest(ctx, id)
}
