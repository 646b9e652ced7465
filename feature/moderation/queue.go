package moderation

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"animal-search-admin/core/metrics"
	"animal-search-admin/core/utils"
	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultLookupConcurrency = 8

// QueueLoader reads pending queues and maps them to renderable items.
type QueueLoader struct {
	store       store.RecordStore
	images      *ImageResolver
	concurrency int
	logger      *zap.Logger
	sf          singleflight.Group
}

// NewQueueLoader creates a loader. concurrency bounds the active record
// lookups of a duplicate queue load.
func NewQueueLoader(s store.RecordStore, images *ImageResolver, concurrency int, logger *zap.Logger) *QueueLoader {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &QueueLoader{
		store:       s,
		images:      images,
		concurrency: concurrency,
		logger:      logger,
	}
}

// LoadQueue returns every pending item of queue. An empty queue is an empty,
// non-nil slice; a store failure is a StoreUnavailable error and no items.
// Concurrent loads of the same queue share one store round trip.
func (l *QueueLoader) LoadQueue(ctx context.Context, queue models.QueueType) ([]models.PendingItem, error) {
	v, err, shared := l.sf.Do(string(queue), func() (any, error) {
		// The load is shared, so one caller going away must not fail the others.
		loadCtx := context.WithoutCancel(ctx)
		switch queue {
		case models.QueueMatches:
			return l.loadMatches(loadCtx)
		case models.QueueDuplicates:
			return l.loadDuplicates(loadCtx)
		default:
			return nil, invalidInput("load queue", "", "unknown queue %q", queue)
		}
	})
	if err != nil {
		metrics.QueueLoads.WithLabelValues(string(queue), "error").Inc()
		return nil, err
	}

	items := v.([]models.PendingItem)
	metrics.QueueLoads.WithLabelValues(string(queue), "ok").Inc()
	metrics.QueueSize.WithLabelValues(string(queue)).Set(float64(len(items)))
	l.logger.Debug("Queue loaded",
		zap.String("queue", string(queue)),
		zap.Int("count", len(items)),
		zap.Bool("shared", shared))

	if shared {
		return slices.Clone(items), nil
	}
	return items, nil
}

func (l *QueueLoader) loadMatches(ctx context.Context) ([]models.PendingItem, error) {
	reqs, err := l.store.ListMatchRequests(ctx)
	if err != nil {
		return nil, &Error{Kind: KindStoreUnavailable, Op: "load matches", Err: err}
	}

	items := make([]models.PendingItem, 0, len(reqs))
	for _, r := range reqs {
		item := models.PendingItem{
			ID:        r.ID,
			Queue:     models.QueueMatches,
			AnimalID:  r.AnimalID,
			OldImage:  l.images.Resolve(ctx, r.OldImageURL),
			NewImage:  l.images.Resolve(ctx, r.NewImageURL),
			Condition: r.Condition,
		}
		if !r.SubmittedAt.IsZero() {
			at := r.SubmittedAt
			item.SubmittedAt = &at
		}
		items = append(items, item)
	}
	return items, nil
}

func (l *QueueLoader) loadDuplicates(ctx context.Context) ([]models.PendingItem, error) {
	reqs, err := l.store.ListDuplicateRequests(ctx)
	if err != nil {
		return nil, &Error{Kind: KindStoreUnavailable, Op: "load duplicates", Err: err}
	}

	items := make([]models.PendingItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, r := range reqs {
		items[i] = models.PendingItem{
			ID:        r.ID,
			Queue:     models.QueueDuplicates,
			AnimalID:  r.ExistingID,
			NewImage:  l.images.Resolve(ctx, utils.StringField(r.NewData, models.FieldImageURL)),
			Condition: utils.StringField(r.NewData, models.FieldCondition),
			NewData:   r.NewData,
		}
		if r.ExistingID == "" {
			l.logger.Warn("Duplicate request has no existing record id", zap.String("request_id", r.ID))
			items[i].OldImage = l.images.Placeholder()
			items[i].ReferenceMissing = true
			continue
		}

		g.Go(func() error {
			rec, err := l.store.GetActiveRecord(gctx, r.ExistingID)
			switch {
			case errors.Is(err, store.ErrNotFound):
				l.logger.Warn("Duplicate request references a missing record",
					zap.String("request_id", r.ID),
					zap.String("existing_id", r.ExistingID))
				items[i].OldImage = l.images.Placeholder()
				items[i].ReferenceMissing = true
				return nil
			case err != nil:
				return fmt.Errorf("lookup %s: %w", r.ExistingID, err)
			}
			items[i].OldImage = l.images.Resolve(gctx, rec.ImageURL())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &Error{Kind: KindStoreUnavailable, Op: "load duplicates", Err: err}
	}
	return items, nil
}
