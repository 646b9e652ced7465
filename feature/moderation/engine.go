package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-search-admin/core/metrics"
	"animal-search-admin/core/reconcile"
	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recordIDSpace namespaces the identifiers of records created by duplicate accepts.
var recordIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("animalsearch:active-record"))

// NewRecordID returns the identifier a duplicate accept assigns to the new record.
// It depends only on the request id, so a retried accept targets the same document.
func NewRecordID(requestID string) string {
	return uuid.NewSHA1(recordIDSpace, []byte("duplicate/"+requestID)).String()
}

// Engine applies operator decisions as ordered store mutations.
type Engine struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine over s.
func NewEngine(s store.RecordStore, logger *zap.Logger) *Engine {
	return &Engine{store: s, logger: logger}
}

// Plan is a prepared resolution. It is executed at most once.
type Plan struct {
	Outcome  models.Outcome
	Sequence *reconcile.Sequence
}

// Describe lists the planned steps for display.
func (p *Plan) Describe() []string {
	return reconcile.Describe(p.Sequence)
}

// ResolveMatch applies decision to a match request.
// Accept deletes the candidate record and then the request; Reject deletes the request.
// An empty candidateAnimalID is taken from the stored request.
func (e *Engine) ResolveMatch(ctx context.Context, requestID, candidateAnimalID string, decision models.Decision) (models.Outcome, error) {
	plan, err := e.PlanMatch(ctx, requestID, candidateAnimalID, decision)
	if err != nil {
		return models.Outcome{}, err
	}
	return e.Execute(ctx, plan)
}

// ResolveDuplicate applies decision to a duplicate request.
// Accept inserts the new record, deletes the old one and then the request;
// Reject deletes the request. Empty oldAnimalID or nil payload are taken from
// the stored request.
func (e *Engine) ResolveDuplicate(ctx context.Context, requestID, oldAnimalID string, payload map[string]any, decision models.Decision) (models.Outcome, error) {
	plan, err := e.PlanDuplicate(ctx, requestID, oldAnimalID, payload, decision)
	if err != nil {
		return models.Outcome{}, err
	}
	return e.Execute(ctx, plan)
}

// PlanMatch validates a match decision against the store and builds its sequence.
func (e *Engine) PlanMatch(ctx context.Context, requestID, candidateAnimalID string, decision models.Decision) (*Plan, error) {
	const op = "resolve match"
	decision, err := validate(op, requestID, decision)
	if err != nil {
		return nil, err
	}

	plan := newPlan(models.QueueMatches, requestID, decision)
	req, err := e.store.GetMatchRequest(ctx, requestID)
	if errors.Is(err, store.ErrNotFound) {
		plan.Outcome.AlreadyResolved = true
		return plan, nil
	}
	if err != nil {
		return nil, &Error{Kind: KindStoreUnavailable, Op: op, RequestID: requestID, Err: err}
	}

	// Reject needs no animal id, but a contradicting one is still refused.
	animalID, err := reconcileID(op, requestID, "animal_id", candidateAnimalID, req.AnimalID, decision == models.DecisionAccept)
	if err != nil {
		return nil, err
	}

	if decision == models.DecisionAccept {
		if err := e.checkReference(ctx, op, plan, animalID); err != nil {
			return nil, err
		}
		plan.Sequence.Add(reconcile.Action{
			Type:   reconcile.ActionDeleteRecord,
			Key:    animalID,
			Reason: "match accepted",
			Apply: func(ctx context.Context) error {
				return e.store.DeleteActiveRecord(ctx, animalID)
			},
		})
	}

	plan.Sequence.Add(e.deleteRequest(requestID, decision, e.store.DeleteMatchRequest))
	return plan, nil
}

// PlanDuplicate validates a duplicate decision against the store and builds its sequence.
func (e *Engine) PlanDuplicate(ctx context.Context, requestID, oldAnimalID string, payload map[string]any, decision models.Decision) (*Plan, error) {
	const op = "resolve duplicate"
	decision, err := validate(op, requestID, decision)
	if err != nil {
		return nil, err
	}

	plan := newPlan(models.QueueDuplicates, requestID, decision)
	req, err := e.store.GetDuplicateRequest(ctx, requestID)
	if errors.Is(err, store.ErrNotFound) {
		plan.Outcome.AlreadyResolved = true
		return plan, nil
	}
	if err != nil {
		return nil, &Error{Kind: KindStoreUnavailable, Op: op, RequestID: requestID, Err: err}
	}

	oldID, err := reconcileID(op, requestID, "existing_id", oldAnimalID, req.ExistingID, decision == models.DecisionAccept)
	if err != nil {
		return nil, err
	}

	if decision == models.DecisionAccept {
		newData := req.NewData
		if payload != nil {
			same, err := samePayload(payload, req.NewData)
			if err != nil {
				return nil, invalidInput(op, requestID, "new_data: %v", err)
			}
			if !same {
				return nil, invalidInput(op, requestID, "new_data does not match the pending request")
			}
		}
		if len(newData) == 0 {
			return nil, invalidInput(op, requestID, "pending request has no new_data to insert")
		}

		if err := e.checkReference(ctx, op, plan, oldID); err != nil {
			return nil, err
		}

		newID := NewRecordID(requestID)
		plan.Sequence.Add(reconcile.Action{
			Type:   reconcile.ActionInsertRecord,
			Key:    newID,
			Reason: "duplicate accepted, new registration kept",
			Apply: func(ctx context.Context) error {
				created, err := e.store.CreateActiveRecord(ctx, newID, newData)
				if err != nil {
					return err
				}
				if !created {
					e.logger.Info("New record already present, reusing it",
						zap.String("request_id", requestID),
						zap.String("record_id", newID))
				}
				plan.Outcome.RecordCreated = true
				plan.Outcome.CreatedRecordID = newID
				return nil
			},
		})
		plan.Sequence.Add(reconcile.Action{
			Type:   reconcile.ActionDeleteRecord,
			Key:    oldID,
			Reason: "superseded by " + newID,
			Apply: func(ctx context.Context) error {
				return e.store.DeleteActiveRecord(ctx, oldID)
			},
		})
	}

	plan.Sequence.Add(e.deleteRequest(requestID, decision, e.store.DeleteDuplicateRequest))
	return plan, nil
}

// Refresh re-reads the pending request behind a plan. A request that is gone
// marks the plan as already resolved so Execute does nothing.
func (e *Engine) Refresh(ctx context.Context, plan *Plan) error {
	if plan.Outcome.AlreadyResolved {
		return nil
	}
	id := plan.Outcome.RequestID
	var err error
	switch plan.Outcome.Queue {
	case models.QueueMatches:
		_, err = e.store.GetMatchRequest(ctx, id)
	case models.QueueDuplicates:
		_, err = e.store.GetDuplicateRequest(ctx, id)
	default:
		return invalidInput("refresh", id, "unknown queue %q", plan.Outcome.Queue)
	}
	if errors.Is(err, store.ErrNotFound) {
		e.logger.Info("Pending request resolved since planning",
			zap.String("queue", string(plan.Outcome.Queue)),
			zap.String("request_id", id))
		plan.Outcome.AlreadyResolved = true
		return nil
	}
	if err != nil {
		return &Error{Kind: KindStoreUnavailable, Op: "refresh", RequestID: id, Err: err}
	}
	return nil
}

// Execute runs a plan and reports how far it got.
// A failure of the first step is StoreUnavailable; a failure after a committed
// prefix is PartialSequenceFailure. Both carry the outcome.
func (e *Engine) Execute(ctx context.Context, plan *Plan) (models.Outcome, error) {
	o := &plan.Outcome
	log := e.logger.With(
		zap.String("queue", string(o.Queue)),
		zap.String("request_id", o.RequestID),
		zap.String("decision", string(o.Decision)))

	if o.AlreadyResolved {
		log.Info("Request already resolved, nothing to do")
		metrics.Resolutions.WithLabelValues(string(o.Queue), string(o.Decision), "already_resolved").Inc()
		return *o, nil
	}

	start := time.Now()
	report, err := reconcile.Run(ctx, plan.Sequence)
	metrics.ResolveLatency.WithLabelValues(string(o.Queue)).Observe(time.Since(start).Seconds())

	o.Planned = report.Planned
	o.LastCompleted = report.LastCompleted
	for _, a := range report.Executed {
		o.Steps = append(o.Steps, fmt.Sprintf("%s %s", a.Type, a.Key))
	}

	if err != nil {
		kind := KindStoreUnavailable
		if report.LastCompleted >= 0 {
			kind = KindPartialSequenceFailure
		}
		out := *o
		log.Error("Resolution failed",
			zap.String("kind", string(kind)),
			zap.Int("last_completed", o.LastCompleted),
			zap.Bool("record_created", o.RecordCreated),
			zap.Error(err))
		metrics.Resolutions.WithLabelValues(string(o.Queue), string(o.Decision), strings.ToLower(string(kind))).Inc()
		return out, &Error{Kind: kind, Op: "resolve " + singular(o.Queue), RequestID: o.RequestID, Outcome: &out, Err: err}
	}

	log.Info("Request resolved", zap.Strings("steps", o.Steps), zap.Strings("warnings", o.Warnings))
	metrics.Resolutions.WithLabelValues(string(o.Queue), string(o.Decision), "resolved").Inc()
	return *o, nil
}

func (e *Engine) checkReference(ctx context.Context, op string, plan *Plan, id string) error {
	_, err := e.store.GetActiveRecord(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		w := fmt.Sprintf("%s: active record %s no longer exists", KindReferenceNotFound, id)
		plan.Outcome.Warnings = append(plan.Outcome.Warnings, w)
		e.logger.Warn("Stale queue item", zap.String("request_id", plan.Outcome.RequestID), zap.String("record_id", id))
		return nil
	}
	if err != nil {
		return &Error{Kind: KindStoreUnavailable, Op: op, RequestID: plan.Outcome.RequestID, Err: err}
	}
	return nil
}

func (e *Engine) deleteRequest(requestID string, decision models.Decision, del func(context.Context, string) error) reconcile.Action {
	return reconcile.Action{
		Type:   reconcile.ActionDeleteRequest,
		Key:    requestID,
		Reason: string(decision) + "ed",
		Apply: func(ctx context.Context) error {
			return del(ctx, requestID)
		},
	}
}

func newPlan(queue models.QueueType, requestID string, decision models.Decision) *Plan {
	return &Plan{
		Outcome: models.Outcome{
			RequestID:     requestID,
			Queue:         queue,
			Decision:      decision,
			Steps:         []string{},
			LastCompleted: -1,
		},
		Sequence: &reconcile.Sequence{Name: singular(queue) + "/" + string(decision)},
	}
}

// validate checks the request id and returns the normalized decision.
func validate(op, requestID string, decision models.Decision) (models.Decision, error) {
	if strings.TrimSpace(requestID) == "" {
		return "", invalidInput(op, requestID, "request id is required")
	}
	d, err := models.ParseDecision(string(decision))
	if err != nil {
		return "", invalidInput(op, requestID, "%v", err)
	}
	return d, nil
}

// reconcileID fills an empty caller id from the stored one and rejects a contradiction.
// Both ids empty is an error only when required.
func reconcileID(op, requestID, field, given, stored string, required bool) (string, error) {
	switch {
	case given == "":
		if stored == "" && required {
			return "", invalidInput(op, requestID, "%s is missing from the pending request", field)
		}
		return stored, nil
	case stored != "" && given != stored:
		return "", invalidInput(op, requestID, "%s %q does not match pending request (%q)", field, given, stored)
	default:
		return given, nil
	}
}

// samePayload compares two documents by their JSON form, so 5 and 5.0 are equal.
func samePayload(a, b map[string]any) (bool, error) {
	ja, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ja, jb), nil
}

func singular(q models.QueueType) string {
	switch q {
	case models.QueueMatches:
		return "match"
	case models.QueueDuplicates:
		return "duplicate"
	}
	return string(q)
}
