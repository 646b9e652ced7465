package integrity

import (
	"errors"

	"animal-search-admin/core/logger"
	"animal-search-admin/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/references", h.HandleReferenceCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

func section(result any, err error) any {
	if errors.Is(err, ErrSkipped) {
		return fiber.Map{"status": "skipped"}
	}
	if err != nil {
		return fiber.Map{"status": "error", "error": err.Error()}
	}
	return result
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the reference, structure and schema checks. Checks whose backend is not configured report "skipped".
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	refs, err := h.service.CheckReferences(ctx)
	report["references"] = section(refs, err)

	missing, err := h.service.CheckStructure(ctx)
	report["structure"] = section(fiber.Map{"status": "checked", "missing": missing}, err)

	schema, err := h.service.CheckSchema()
	report["schema"] = section(schema, err)

	return c.JSON(report)
}

// HandleReferenceCheck lists pending requests pointing at missing records.
// @Summary Check References
// @Description Looks up the ActiveRecord referenced by every pending match and duplicate request.
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} checks.ReferenceReport "Reference Report"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /integrity/references [get]
func (h *Handler) HandleReferenceCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckReferences(c.Context())
	if err != nil {
		l.Error("Reference check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Stale) > 0 {
		l.Warn("Stale references detected", zap.Int("count", len(report.Stale)))
	}
	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the audit and image folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if errors.Is(err, checks.ErrBucketMissing) && fix {
		missing = h.service.folders
	} else if errors.Is(err, ErrSkipped) {
		return c.JSON(fiber.Map{"status": "skipped"})
	} else if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks the SQL schema.
// @Summary Check Schema
// @Description Checks that the SQL backend tables match the record store models.
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if errors.Is(err, ErrSkipped) {
		return c.JSON(fiber.Map{"status": "skipped"})
	}
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
