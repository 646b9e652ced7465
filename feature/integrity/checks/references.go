package checks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"golang.org/x/sync/errgroup"
)

// StaleReference is a pending request whose ActiveRecord no longer exists.
type StaleReference struct {
	Queue     models.QueueType `json:"queue"`
	RequestID string           `json:"request_id"`
	RecordID  string           `json:"record_id"`
}

// ReferenceReport summarizes a reference check.
type ReferenceReport struct {
	MatchesChecked    int              `json:"matches_checked"`
	DuplicatesChecked int              `json:"duplicates_checked"`
	Stale             []StaleReference `json:"stale"`
}

// CheckReferences looks up the ActiveRecord of every pending request.
// Lookups run concurrently, at most limit at a time.
func CheckReferences(ctx context.Context, s store.RecordStore, limit int) (*ReferenceReport, error) {
	matches, err := s.ListMatchRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list match requests: %w", err)
	}
	dups, err := s.ListDuplicateRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list duplicate requests: %w", err)
	}

	refs := make([]StaleReference, 0, len(matches)+len(dups))
	for _, m := range matches {
		refs = append(refs, StaleReference{Queue: models.QueueMatches, RequestID: m.ID, RecordID: m.AnimalID})
	}
	for _, d := range dups {
		refs = append(refs, StaleReference{Queue: models.QueueDuplicates, RequestID: d.ID, RecordID: d.ExistingID})
	}

	report := &ReferenceReport{
		MatchesChecked:    len(matches),
		DuplicatesChecked: len(dups),
		Stale:             []StaleReference{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, ref := range refs {
		g.Go(func() error {
			_, err := s.GetActiveRecord(gctx, ref.RecordID)
			if errors.Is(err, store.ErrNotFound) {
				mu.Lock()
				report.Stale = append(report.Stale, ref)
				mu.Unlock()
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to look up active records: %w", err)
	}

	sort.Slice(report.Stale, func(i, j int) bool {
		if report.Stale[i].Queue != report.Stale[j].Queue {
			return report.Stale[i].Queue > report.Stale[j].Queue
		}
		return report.Stale[i].RequestID < report.Stale[j].RequestID
	})
	return report, nil
}
