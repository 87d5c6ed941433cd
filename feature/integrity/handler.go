package integrity

import (
	"errors"

	"ingress-identity/core/logger"
	"ingress-identity/feature/integrity/checks"

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
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/sources", h.HandleSourcesCheck)
}

func disabled(err error) bool {
	return errors.Is(err, checks.ErrStorageDisabled) || errors.Is(err, checks.ErrDatabaseDisabled)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the storage, database and sources checks in one call.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	switch missing, err := h.service.CheckStructure(ctx); {
	case disabled(err):
		report["storage"] = map[string]interface{}{"status": "disabled"}
	case err != nil:
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	default:
		report["storage"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	switch schema, err := h.service.CheckDatabase(); {
	case disabled(err):
		report["database"] = map[string]interface{}{"status": "disabled"}
	case err != nil:
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	default:
		report["database"] = schema
	}

	report["sources"] = h.service.CheckSources()

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the snapshot bucket.
// @Summary Check Snapshot Storage
// @Description Checks that the snapshot bucket and folders exist. Optionally creates them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage disabled"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if errors.Is(err, checks.ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil && !fix {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		// The bucket itself is missing; recreate it along with every folder.
		missing = checks.RequiredFolders
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix storage",
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

// HandleDatabaseCheck checks the settings schema.
// @Summary Check Settings Schema
// @Description Checks that the settings table has every expected column.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 503 {object} map[string]string "Database disabled"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDatabase()
	if err != nil {
		l.Warn("Database check unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Settings schema mismatch", zap.Strings("missing", report.MissingColumns))
	}
	return c.JSON(report)
}

// HandleSourcesCheck reports failed manifests and sources.
// @Summary Check Sources
// @Description Summarizes the load state of every manifest and source.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SourcesReport "Sources Report"
// @Router /integrity/sources [get]
func (h *Handler) HandleSourcesCheck(c *fiber.Ctx) error {
	report := h.service.CheckSources()
	if report.Status != "ok" {
		logger.WithRayID(h.service.logger, c).Warn("Source problems detected",
			zap.Strings("failed_manifests", report.FailedManifests),
			zap.Strings("failed_sources", report.FailedSources),
			zap.Int("errors", report.ErrorCount))
	}
	return c.JSON(report)
}
