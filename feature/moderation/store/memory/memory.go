package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"
)

// Store is an in-memory RecordStore.
type Store struct {
	mu         sync.RWMutex
	records    map[string]models.ActiveRecord
	matches    map[string]models.MatchRequest
	duplicates map[string]models.DuplicateRequest
	// dupOrder keeps insertion order, the "store order" of the duplicate queue.
	dupOrder []string
}

var (
	_ store.RecordStore = (*Store)(nil)
	_ store.Seeder      = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{
		records:    make(map[string]models.ActiveRecord),
		matches:    make(map[string]models.MatchRequest),
		duplicates: make(map[string]models.DuplicateRequest),
	}
}

func (s *Store) ListMatchRequests(ctx context.Context) ([]models.MatchRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MatchRequest, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (s *Store) ListDuplicateRequests(ctx context.Context) ([]models.DuplicateRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DuplicateRequest, 0, len(s.duplicates))
	for _, id := range s.dupOrder {
		if d, ok := s.duplicates[id]; ok {
			d.NewData = maps.Clone(d.NewData)
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) GetActiveRecord(ctx context.Context, id string) (*models.ActiveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	rec.Fields = maps.Clone(rec.Fields)
	return &rec, nil
}

func (s *Store) GetMatchRequest(ctx context.Context, id string) (*models.MatchRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.matches[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &req, nil
}

func (s *Store) GetDuplicateRequest(ctx context.Context, id string) (*models.DuplicateRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.duplicates[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	req.NewData = maps.Clone(req.NewData)
	return &req, nil
}

func (s *Store) CreateActiveRecord(ctx context.Context, id string, fields map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; ok {
		return false, nil
	}
	s.records[id] = models.ActiveRecord{ID: id, Fields: maps.Clone(fields)}
	return true, nil
}

func (s *Store) DeleteActiveRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *Store) DeleteMatchRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Store) DeleteDuplicateRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.duplicates, id)
	for i, v := range s.dupOrder {
		if v == id {
			s.dupOrder = append(s.dupOrder[:i], s.dupOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) PutActiveRecord(ctx context.Context, rec models.ActiveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Fields = maps.Clone(rec.Fields)
	s.records[rec.ID] = rec
	return nil
}

func (s *Store) PutMatchRequest(ctx context.Context, req models.MatchRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[req.ID] = req
	return nil
}

func (s *Store) PutDuplicateRequest(ctx context.Context, req models.DuplicateRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.duplicates[req.ID]; !ok {
		s.dupOrder = append(s.dupOrder, req.ID)
	}
	req.NewData = maps.Clone(req.NewData)
	s.duplicates[req.ID] = req
	return nil
}

// ActiveRecordCount returns the number of active records.
func (s *Store) ActiveRecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ActiveRecords returns a copy of every active record, sorted by id.
func (s *Store) ActiveRecords() []models.ActiveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ActiveRecord, 0, len(s.records))
	for _, r := range s.records {
		r.Fields = maps.Clone(r.Fields)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
