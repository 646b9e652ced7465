package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"animal-search-admin/feature/moderation/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// RecordStore is the record store capability used by the queue loader and the
// reconciliation engine. Deletes of missing documents succeed.
type RecordStore interface {
	// ListMatchRequests returns all match requests, newest submission first.
	ListMatchRequests(ctx context.Context) ([]models.MatchRequest, error)
	// ListDuplicateRequests returns all duplicate requests in store order.
	ListDuplicateRequests(ctx context.Context) ([]models.DuplicateRequest, error)

	GetActiveRecord(ctx context.Context, id string) (*models.ActiveRecord, error)
	GetMatchRequest(ctx context.Context, id string) (*models.MatchRequest, error)
	GetDuplicateRequest(ctx context.Context, id string) (*models.DuplicateRequest, error)

	// CreateActiveRecord inserts fields under id unless a record with that id
	// already exists. created reports whether this call wrote the record.
	CreateActiveRecord(ctx context.Context, id string, fields map[string]any) (created bool, err error)

	DeleteActiveRecord(ctx context.Context, id string) error
	DeleteMatchRequest(ctx context.Context, id string) error
	DeleteDuplicateRequest(ctx context.Context, id string) error
}

// Seeder writes documents as-is. It backs local development fixtures.
type Seeder interface {
	PutActiveRecord(ctx context.Context, rec models.ActiveRecord) error
	PutMatchRequest(ctx context.Context, req models.MatchRequest) error
	PutDuplicateRequest(ctx context.Context, req models.DuplicateRequest) error
}

// Fixture is the JSON layout accepted by Seed.
type Fixture struct {
	ActiveRecords     []models.ActiveRecord     `json:"active_records"`
	MatchRequests     []models.MatchRequest     `json:"match_requests"`
	DuplicateRequests []models.DuplicateRequest `json:"duplicate_requests"`
}

// Total returns the number of documents in the fixture.
func (f *Fixture) Total() int {
	return len(f.ActiveRecords) + len(f.MatchRequests) + len(f.DuplicateRequests)
}

// ReadFixture decodes a fixture and checks that every document has an id.
func ReadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	for i, rec := range f.ActiveRecords {
		if rec.ID == "" {
			return nil, fmt.Errorf("active_records[%d]: missing id", i)
		}
	}
	for i, req := range f.MatchRequests {
		if req.ID == "" || req.AnimalID == "" {
			return nil, fmt.Errorf("match_requests[%d]: id and animal_id are required", i)
		}
	}
	for i, req := range f.DuplicateRequests {
		if req.ID == "" || req.ExistingID == "" {
			return nil, fmt.Errorf("duplicate_requests[%d]: id and existingId are required", i)
		}
	}
	return &f, nil
}

// Seed writes every document of f and returns how many were written.
func Seed(ctx context.Context, s Seeder, f *Fixture) (int, error) {
	written := 0
	for _, rec := range f.ActiveRecords {
		if err := s.PutActiveRecord(ctx, rec); err != nil {
			return written, fmt.Errorf("failed to seed active record %s: %w", rec.ID, err)
		}
		written++
	}
	for _, req := range f.MatchRequests {
		if err := s.PutMatchRequest(ctx, req); err != nil {
			return written, fmt.Errorf("failed to seed match request %s: %w", req.ID, err)
		}
		written++
	}
	for _, req := range f.DuplicateRequests {
		if err := s.PutDuplicateRequest(ctx, req); err != nil {
			return written, fmt.Errorf("failed to seed duplicate request %s: %w", req.ID, err)
		}
		written++
	}
	return written, nil
}
