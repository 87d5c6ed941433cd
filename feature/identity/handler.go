package identity

import (
	"encoding/json"
	"errors"
	"strings"

	"ingress-identity/core/logger"
	"ingress-identity/core/settings"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/finder"
	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for player identity.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the identity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	players := app.Group("/players")
	players.Post("/find", h.HandleFind)
	players.Get("/:oid", h.HandleGetPlayer)
	players.Get("/:oid/exists", h.HandleHasPlayer)

	app.Get("/extras/:tag/:oid/sources", h.HandleSourcesForExtra)
	app.Get("/information", h.HandleInformation)
	app.Get("/errors", h.HandleErrors)
	app.Post("/reload", h.HandleReload)
	app.Post("/manifests", h.HandleAddManifest)
	app.Delete("/manifests/:key", h.HandleRemoveManifest)
	app.Post("/cache/clear", h.HandleClearCache)
	app.Get("/settings/:key", h.HandleGetSetting)
	app.Put("/settings/:key", h.HandleSetSetting)
}

// matchOptions applies show_* query overrides on top of the configured defaults.
func (h *Handler) matchOptions(c *fiber.Ctx) models.MatchOptions {
	o := h.service.MatchOptions(c.Context())
	override := func(name string, dst *bool) {
		if v := c.Query(name); v != "" {
			*dst = c.QueryBool(name, *dst)
		}
	}
	override(settings.ToggleShowAnomalies, &o.ShowAnomalies)
	override(settings.ToggleShowCommunities, &o.ShowCommunities)
	override(settings.ToggleShowEvents, &o.ShowEvents)
	override(settings.ToggleShowExtra, &o.ShowExtra)
	return o
}

// HandleGetPlayer returns a merged player.
// @Summary Get Player
// @Description Returns the merged record of a player. Optional parts can be hidden with the show_* flags.
// @Tags players
// @Produce json
// @Param oid path string true "Player oid"
// @Param show_anomalies query boolean false "Include anomalies"
// @Param show_communities query boolean false "Include communities"
// @Param show_events query boolean false "Include events"
// @Param show_extra query boolean false "Include extra data"
// @Success 200 {object} PlayerResult "Lookup result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /players/{oid} [get]
func (h *Handler) HandleGetPlayer(c *fiber.Ctx) error {
	opts := h.matchOptions(c)
	res, err := h.service.GetPlayer(c.Context(), c.Params("oid"), &opts)
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Player lookup failed", err)
	}
	return c.JSON(res)
}

// HandleHasPlayer reports whether a player is known.
// @Summary Player Exists
// @Tags players
// @Produce json
// @Param oid path string true "Player oid"
// @Success 200 {object} map[string]bool "Existence"
// @Router /players/{oid}/exists [get]
func (h *Handler) HandleHasPlayer(c *fiber.Ctx) error {
	ok, err := h.service.HasPlayer(c.Context(), c.Params("oid"))
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Player lookup failed", err)
	}
	return c.JSON(fiber.Map{"exists": ok})
}

// HandleFind searches players.
// @Summary Find Players
// @Description Glob search on name and nickname, exact faction, all listed anomalies.
// @Tags players
// @Accept json
// @Produce json
// @Param pattern body finder.Pattern true "Search pattern"
// @Success 200 {array} models.Player "Matching players"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players/find [post]
func (h *Handler) HandleFind(c *fiber.Ctx) error {
	var pattern finder.Pattern
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&pattern); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pattern: " + err.Error()})
		}
	}
	found, err := h.service.Find(c.Context(), pattern)
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Search failed", err)
	}
	return c.JSON(found)
}

// HandleSourcesForExtra lists the sources declaring a community or event.
// @Summary Sources For Extra
// @Tags players
// @Produce json
// @Param tag path string true "Extra tag (community, event)"
// @Param oid path string true "Tag oid"
// @Success 200 {array} models.SourceRef "Sources"
// @Router /extras/{tag}/{oid}/sources [get]
func (h *Handler) HandleSourcesForExtra(c *fiber.Ctx) error {
	refs, err := h.service.SourcesForExtra(c.Context(), c.Params("tag"), c.Params("oid"))
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Lookup failed", err)
	}
	return c.JSON(refs)
}

// HandleInformation describes the loaded manifests and sources.
// @Summary Information
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]sources.ManifestInfo "Tree information"
// @Router /information [get]
func (h *Handler) HandleInformation(c *fiber.Ctx) error {
	info, err := h.service.Information(c.Context())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Information failed", err)
	}
	return c.JSON(info)
}

// HandleErrors returns errors nested by manifest and source.
// @Summary Errors
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]map[string][]string "Errors"
// @Router /errors [get]
func (h *Handler) HandleErrors(c *fiber.Ctx) error {
	errs, err := h.service.Errors(c.Context())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Error report failed", err)
	}
	return c.JSON(errs)
}

// HandleReload reloads every manifest.
// @Summary Reload
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string "Status"
// @Router /reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Reload requested")
	if err := h.service.Reload(c.Context()); err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Reload failed", err)
	}
	return c.JSON(fiber.Map{"status": "reloaded"})
}

type manifestRequest struct {
	Key string `json:"key"`
}

// HandleAddManifest adds a manifest.
// @Summary Add Manifest
// @Tags admin
// @Accept json
// @Produce json
// @Param manifest body manifestRequest true "Manifest key"
// @Success 201 {object} map[string]string "Added"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Conflict"
// @Router /manifests [post]
func (h *Handler) HandleAddManifest(c *fiber.Ctx) error {
	var req manifestRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Key) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}

	err := h.service.AddManifest(c.Context(), req.Key)
	switch {
	case errors.Is(err, sources.ErrManifestExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, spreadsheet.ErrInvalidKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return h.fail(c, fiber.StatusInternalServerError, "Add manifest failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "added", "key": strings.TrimSpace(req.Key)})
}

// HandleRemoveManifest removes a manifest.
// @Summary Remove Manifest
// @Tags admin
// @Produce json
// @Param key path string true "Manifest key"
// @Success 200 {object} map[string]string "Removed"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /manifests/{key} [delete]
func (h *Handler) HandleRemoveManifest(c *fiber.Ctx) error {
	key := c.Params("key")
	err := h.service.RemoveManifest(c.Context(), key)
	switch {
	case errors.Is(err, sources.ErrUnknownManifest):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return h.fail(c, fiber.StatusInternalServerError, "Remove manifest failed", err)
	}
	return c.JSON(fiber.Map{"status": "removed", "key": key})
}

// HandleClearCache drops cached players and settings.
// @Summary Clear Cache
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string "Status"
// @Router /cache/clear [post]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	h.service.ClearCache()
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleGetSetting returns one setting.
// @Summary Get Setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} map[string]interface{} "Setting"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /settings/{key} [get]
func (h *Handler) HandleGetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	v, err := h.service.GetSetting(c.Context(), key)
	if errors.Is(err, settings.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Read setting failed", err)
	}
	return c.JSON(fiber.Map{"key": key, "value": v})
}

// HandleSetSetting stores one setting. The body is the JSON value.
// @Summary Set Setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} map[string]string "Stored"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /settings/{key} [put]
func (h *Handler) HandleSetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	err := h.service.SetSetting(c.Context(), key, json.RawMessage(c.Body()))
	if errors.Is(err, ErrInvalidSetting) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Write setting failed", err)
	}
	return c.JSON(fiber.Map{"status": "stored", "key": key})
}

func (h *Handler) fail(c *fiber.Ctx, status int, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
