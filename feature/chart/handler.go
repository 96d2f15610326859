package chart

import (
	"os"
	"path/filepath"

	"chart-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the generated catalog documents over HTTP.
type Handler struct {
	cfg    Config
	logger *zap.Logger
}

// NewHandler creates an HTTP handler over the pipeline's output dir.
func NewHandler(cfg Config, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/songs")
	group.Get("/", h.HandleGetCatalog)
	group.Get("/intl", h.HandleGetIntlCatalog)
	group.Get("/intl/master", h.HandleGetIntlMaster)
}

// HandleGetCatalog returns the domestic catalog.
// @Summary Get Domestic Catalog
// @Description Returns the reconciled domestic chart catalog.
// @Tags songs
// @Produce json
// @Success 200 {array} models.Chart "Chart catalog"
// @Failure 404 {object} map[string]string "No catalog generated yet"
// @Router /songs [get]
func (h *Handler) HandleGetCatalog(c *fiber.Ctx) error {
	return h.sendDocument(c, OutputFile)
}

// HandleGetIntlCatalog returns the international catalog.
// @Summary Get International Catalog
// @Description Returns the reconciled international chart catalog.
// @Tags songs
// @Produce json
// @Success 200 {array} models.Chart "Chart catalog"
// @Failure 404 {object} map[string]string "No catalog generated yet"
// @Router /songs/intl [get]
func (h *Handler) HandleGetIntlCatalog(c *fiber.Ctx) error {
	return h.sendDocument(c, IntlOutputFile)
}

// HandleGetIntlMaster returns the folded international master catalog.
// @Summary Get International Master Catalog
// @Description Returns the cached master catalog folded with the latest international run.
// @Tags songs
// @Produce json
// @Success 200 {array} models.Chart "Chart catalog"
// @Failure 404 {object} map[string]string "No catalog generated yet"
// @Router /songs/intl/master [get]
func (h *Handler) HandleGetIntlMaster(c *fiber.Ctx) error {
	return h.sendDocument(c, IntlMasterFile)
}

func (h *Handler) sendDocument(c *fiber.Ctx, name string) error {
	path := filepath.Join(h.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Warn("Catalog document not available", zap.String("path", path))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "catalog not generated yet",
		})
	}
	return c.SendFile(path)
}
