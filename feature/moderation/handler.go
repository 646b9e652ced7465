package moderation

import (
	"context"
	"errors"
	"time"

	"animal-search-admin/core/logger"
	"animal-search-admin/core/middleware/rayid"
	"animal-search-admin/feature/moderation/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QueueResponse is the body of a queue listing.
type QueueResponse struct {
	Queue models.QueueType     `json:"queue"`
	Count int                  `json:"count"`
	Items []models.PendingItem `json:"items"`
}

// ResolveMatchRequest is the body of a match resolution.
type ResolveMatchRequest struct {
	Decision models.Decision `json:"decision" example:"accept"`
	AnimalID string          `json:"animal_id,omitempty" example:"a1"`
}

// ResolveDuplicateRequest is the body of a duplicate resolution.
type ResolveDuplicateRequest struct {
	Decision   models.Decision `json:"decision" example:"reject"`
	ExistingID string          `json:"existing_id,omitempty" example:"a2"`
	NewData    map[string]any  `json:"new_data,omitempty"`
}

// ErrorResponse is the body of every failed moderation call.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Kind    Kind            `json:"kind,omitempty"`
	Outcome *models.Outcome `json:"outcome,omitempty"`
}

// Handler handles HTTP requests for moderation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the moderation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/moderation")
	group.Get("/queues/:queue", h.HandleListQueue)
	group.Post("/matches/:id/resolve", h.HandleResolveMatch)
	group.Post("/duplicates/:id/resolve", h.HandleResolveDuplicate)
	group.Get("/audit/:queue", h.HandleAuditLog)
}

// HandleListQueue returns the pending items of a queue.
// @Summary List Pending Queue
// @Description Loads every pending item of the matches or duplicates queue. An empty queue is a 200 with count 0; a store failure is a 503.
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Param queue path string true "Queue" Enums(matches, duplicates)
// @Success 200 {object} QueueResponse "Pending items"
// @Failure 400 {object} ErrorResponse "Unknown queue"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /moderation/queues/{queue} [get]
func (h *Handler) HandleListQueue(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	queue, err := models.ParseQueueType(c.Params("queue"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: KindInvalidInput})
	}

	items, err := h.service.LoadQueue(c.UserContext(), queue)
	if err != nil {
		l.Error("Queue load failed", zap.String("queue", string(queue)), zap.Error(err))
		return h.fail(c, err)
	}

	return c.JSON(QueueResponse{Queue: queue, Count: len(items), Items: items})
}

// HandleResolveMatch applies an operator decision to a match request.
// @Summary Resolve Match Request
// @Description Accept deletes the candidate record and then the request. Reject deletes only the request. Resolving an already resolved request succeeds with already_resolved=true.
// @Tags moderation
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Match request id"
// @Param body body ResolveMatchRequest true "Decision"
// @Success 200 {object} models.Outcome "Outcome"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Already being resolved"
// @Failure 500 {object} ErrorResponse "Partial sequence failure"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /moderation/matches/{id}/resolve [post]
func (h *Handler) HandleResolveMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var body ResolveMatchRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid body: " + err.Error(), Kind: KindInvalidInput})
	}

	out, err := h.service.ResolveMatch(h.ctx(c), c.Params("id"), body.AnimalID, body.Decision)
	if err != nil {
		l.Error("Match resolution failed", zap.String("request_id", c.Params("id")), zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleResolveDuplicate applies an operator decision to a duplicate request.
// @Summary Resolve Duplicate Request
// @Description Accept inserts new_data as a record, deletes the existing record and then the request. Reject deletes only the request. On a partial failure the outcome tells whether the new record was created.
// @Tags moderation
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Duplicate request id"
// @Param body body ResolveDuplicateRequest true "Decision"
// @Success 200 {object} models.Outcome "Outcome"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Already being resolved"
// @Failure 500 {object} ErrorResponse "Partial sequence failure"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /moderation/duplicates/{id}/resolve [post]
func (h *Handler) HandleResolveDuplicate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var body ResolveDuplicateRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid body: " + err.Error(), Kind: KindInvalidInput})
	}

	out, err := h.service.ResolveDuplicate(h.ctx(c), c.Params("id"), body.ExistingID, body.NewData, body.Decision)
	if err != nil {
		l.Error("Duplicate resolution failed", zap.String("request_id", c.Params("id")), zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleAuditLog lists journaled decisions.
// @Summary List Audit Journal
// @Description Lists the decisions resolved on one day (UTC) for a queue.
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Param queue path string true "Queue" Enums(matches, duplicates)
// @Param date query string false "Day as YYYY-MM-DD, defaults to today"
// @Success 200 {array} AuditEntry "Entries"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 503 {object} ErrorResponse "Journal unavailable"
// @Router /moderation/audit/{queue} [get]
func (h *Handler) HandleAuditLog(c *fiber.Ctx) error {
	queue, err := models.ParseQueueType(c.Params("queue"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: KindInvalidInput})
	}

	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		if day, err = time.Parse(auditDayLayout, raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "date must be YYYY-MM-DD", Kind: KindInvalidInput})
		}
	}

	entries, err := h.service.AuditLog(c.UserContext(), queue, day)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Audit listing failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: err.Error(), Kind: KindStoreUnavailable})
	}
	return c.JSON(entries)
}

func (h *Handler) ctx(c *fiber.Ctx) context.Context {
	rid, _ := c.Locals(rayid.LocalsKey).(string)
	return WithRayID(c.UserContext(), rid)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: err.Error(), Kind: KindOf(err)}
	var modErr *Error
	if errors.As(err, &modErr) {
		resp.Outcome = modErr.Outcome
	}
	return c.Status(StatusFor(err)).JSON(resp)
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return fiber.StatusBadRequest
	case KindReferenceNotFound:
		return fiber.StatusNotFound
	case KindInFlight:
		return fiber.StatusConflict
	case KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
