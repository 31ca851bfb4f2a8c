package integrity

import (
	"bundle-manager/core/logger"
	"bundle-manager/feature/bundle"

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
	group.Get("/:surface", h.HandleSurfaceCheck)
}

// HandleIntegrityCheck checks every surface.
// @Summary Run All Discount Integrity Checks
// @Description Checks every surface's stored tiers against the shop's discount codes. Nothing is changed.
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Success 200 {array} integrity.SurfaceReport "Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering discount integrity checks")

	reports, err := h.service.CheckAll(c.UserContext(), c.Get(bundle.ShopHeader))
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleSurfaceCheck checks one surface.
// @Summary Run Surface Integrity Check
// @Description Checks one surface's stored tiers against the shop's discount codes. Nothing is changed.
// @Tags integrity
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Success 200 {object} integrity.SurfaceReport "Report"
// @Failure 404 {object} map[string]string "Unknown surface"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/{surface} [get]
func (h *Handler) HandleSurfaceCheck(c *fiber.Ctx) error {
	surface, err := bundle.ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSurface(c.UserContext(), c.Get(bundle.ShopHeader), surface)
	if err != nil {
		l.Error("Integrity check failed", zap.String("surface", surface.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
