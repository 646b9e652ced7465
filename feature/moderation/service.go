package moderation

import (
	"context"
	"sync"
	"time"

	"animal-search-admin/core/metrics"
	"animal-search-admin/feature/moderation/models"

	"go.uber.org/zap"
)

type rayIDKey struct{}

// WithRayID attaches the request RayID to ctx for the audit journal.
func WithRayID(ctx context.Context, rayID string) context.Context {
	return context.WithValue(ctx, rayIDKey{}, rayID)
}

func rayIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(rayIDKey{}).(string)
	return s
}

// Service is the entry point of the presentation layer (HTTP and CLI).
// It guards each request id against concurrent resolution and journals
// every resolved decision.
type Service struct {
	loader  *QueueLoader
	engine  *Engine
	journal *Journal
	logger  *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a moderation service.
func NewService(loader *QueueLoader, engine *Engine, journal *Journal, logger *zap.Logger) *Service {
	return &Service{
		loader:   loader,
		engine:   engine,
		journal:  journal,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// LoadQueue returns the pending items of queue.
func (s *Service) LoadQueue(ctx context.Context, queue models.QueueType) ([]models.PendingItem, error) {
	return s.loader.LoadQueue(ctx, queue)
}

// PlanMatch prepares a match resolution without touching the store.
func (s *Service) PlanMatch(ctx context.Context, requestID, animalID string, decision models.Decision) (*Plan, error) {
	return s.engine.PlanMatch(ctx, requestID, animalID, decision)
}

// PlanDuplicate prepares a duplicate resolution without touching the store.
func (s *Service) PlanDuplicate(ctx context.Context, requestID, existingID string, payload map[string]any, decision models.Decision) (*Plan, error) {
	return s.engine.PlanDuplicate(ctx, requestID, existingID, payload, decision)
}

// ResolveMatch applies a decision to a match request.
func (s *Service) ResolveMatch(ctx context.Context, requestID, animalID string, decision models.Decision) (models.Outcome, error) {
	return s.guarded(ctx, models.QueueMatches, requestID, func(ctx context.Context) (*Plan, error) {
		return s.engine.PlanMatch(ctx, requestID, animalID, decision)
	})
}

// ResolveDuplicate applies a decision to a duplicate request.
func (s *Service) ResolveDuplicate(ctx context.Context, requestID, existingID string, payload map[string]any, decision models.Decision) (models.Outcome, error) {
	return s.guarded(ctx, models.QueueDuplicates, requestID, func(ctx context.Context) (*Plan, error) {
		return s.engine.PlanDuplicate(ctx, requestID, existingID, payload, decision)
	})
}

// Apply executes a plan obtained from PlanMatch or PlanDuplicate.
// The pending request is read again under the guard; a plan whose request
// has since been resolved is reported as already resolved.
func (s *Service) Apply(ctx context.Context, plan *Plan) (models.Outcome, error) {
	return s.guarded(ctx, plan.Outcome.Queue, plan.Outcome.RequestID, func(ctx context.Context) (*Plan, error) {
		if err := s.engine.Refresh(ctx, plan); err != nil {
			return nil, err
		}
		return plan, nil
	})
}

// AuditLog returns the journaled decisions of one queue and day.
func (s *Service) AuditLog(ctx context.Context, queue models.QueueType, day time.Time) ([]AuditEntry, error) {
	return s.journal.List(ctx, queue, day)
}

func (s *Service) guarded(ctx context.Context, queue models.QueueType, requestID string, prepare func(context.Context) (*Plan, error)) (models.Outcome, error) {
	key := string(queue) + "/" + requestID
	if !s.acquire(key) {
		metrics.Resolutions.WithLabelValues(string(queue), "", "in_flight").Inc()
		return models.Outcome{}, &Error{Kind: KindInFlight, Op: "resolve", RequestID: requestID}
	}
	defer s.release(key)

	plan, err := prepare(ctx)
	if err != nil {
		return models.Outcome{}, err
	}

	out, err := s.engine.Execute(ctx, plan)
	if err != nil {
		return out, err
	}

	if !out.AlreadyResolved {
		if err := s.journal.Record(ctx, out, rayIDFrom(ctx)); err != nil {
			s.logger.Warn("Failed to journal decision", zap.String("request_id", requestID), zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
