package bundle

import (
	"bytes"
	"encoding/json"
	"net/url"

	"bundle-manager/core/logger"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShopHeader carries the shop domain on admin requests.
const ShopHeader = "X-Shop-Domain"

// Handler handles HTTP requests for bundle configuration.
type Handler struct {
	service *Service
	origin  string
}

// NewHandler creates a new HTTP handler. origin is sent as
// Access-Control-Allow-Origin on storefront responses.
func NewHandler(service *Service, origin string) *Handler {
	if origin == "" {
		origin = "*"
	}
	return &Handler{service: service, origin: origin}
}

// RegisterRoutes registers the admin bundle routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bundles")
	group.Get("/:surface", h.HandleGetConfig)
	group.Post("/:surface", h.HandleSaveConfig)
	group.Post("/:surface/plan", h.HandlePlan)
	group.Get("/:surface/reports", h.HandleListReports)
	group.Get("/:surface/reports/:timestamp", h.HandleGetReport)
}

// RegisterStorefrontRoutes registers the public storefront routes.
func (h *Handler) RegisterStorefrontRoutes(app fiber.Router) {
	app.Get("/storefront/bundle-config", h.HandleStorefrontConfig)
}

type saveRequest struct {
	Config *Config `json:"config"`
}

// parseSaveRequest decodes {"config": {...}}.
func parseSaveRequest(body []byte) (*Config, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("Empty request body")
	}
	var req saveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.Newf("JSON parse error: %s", err.Error())
	}
	if req.Config == nil {
		return nil, errors.New("No config provided")
	}
	return req.Config, nil
}

// HandleGetConfig returns the configuration of a surface.
// @Summary Get Bundle Configuration
// @Description Returns the stored configuration of a surface with refreshed product details, or the default tiers when nothing is stored.
// @Tags bundles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Success 200 {object} bundle.Config "Configuration"
// @Failure 404 {object} map[string]string "Unknown surface"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bundles/{surface} [get]
func (h *Handler) HandleGetConfig(c *fiber.Ctx) error {
	surface, err := ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	cfg, err := h.service.Load(c.UserContext(), c.Get(ShopHeader), surface)
	if err != nil {
		l.Error("Failed to load bundle configuration", zap.String("surface", surface.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(cfg)
}

// HandleSaveConfig stores a configuration and reconciles its discounts.
// @Summary Save Bundle Configuration
// @Description Stores the configuration, then deletes discount codes of removed tiers and creates or updates one Basic discount code per tier.
// @Tags bundles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Param request body bundle.saveRequest true "Configuration"
// @Success 200 {object} discount.Result "Save result"
// @Failure 400 {object} discount.Result "Invalid request body"
// @Failure 404 {object} map[string]string "Unknown surface"
// @Router /bundles/{surface} [post]
func (h *Handler) HandleSaveConfig(c *fiber.Ctx) error {
	surface, err := ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	cfg, err := parseSaveRequest(c.Body())
	if err != nil {
		l.Warn("Rejected bundle save", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	result := h.service.Save(c.UserContext(), c.Get(ShopHeader), surface, cfg)
	return c.JSON(result)
}

// HandlePlan previews the discount changes a save would make.
// @Summary Preview Discount Changes
// @Description Computes the discount plan a save would execute without writing anything.
// @Tags bundles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Param request body bundle.saveRequest true "Configuration"
// @Success 200 {object} discount.Plan "Plan"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 422 {object} map[string]string "Invalid configuration"
// @Router /bundles/{surface}/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	surface, err := ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	cfg, err := parseSaveRequest(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.service.Preview(c.UserContext(), c.Get(ShopHeader), surface, cfg)
	if err != nil {
		l.Error("Plan preview failed", zap.String("surface", surface.Name), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

// HandleListReports lists archived reconcile reports, newest first.
// @Summary List Reconcile Reports
// @Description Lists archived reconcile reports of a surface, newest first. Empty when the archive is disabled.
// @Tags bundles
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Success 200 {array} bundle.ReportInfo "Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bundles/{surface}/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	surface, err := ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	reports, err := h.service.Reports(c.UserContext(), c.Get(ShopHeader), surface)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived reconcile report.
// @Summary Get Reconcile Report
// @Description Returns one archived reconcile report.
// @Tags bundles
// @Produce json
// @Security ApiKeyAuth
// @Param surface path string true "Bundle surface" Enums(cart, product_page)
// @Param timestamp path integer true "Report timestamp (Unix milliseconds)"
// @Param X-Shop-Domain header string false "Shop domain (defaults to SHOP_DOMAIN)"
// @Success 200 {object} bundle.Report "Report"
// @Failure 400 {object} map[string]string "Invalid timestamp"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bundles/{surface}/reports/{timestamp} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	surface, err := ParseSurface(c.Params("surface"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	ts, err := c.ParamsInt("timestamp")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid timestamp"})
	}

	report, err := h.service.Report(c.UserContext(), c.Get(ShopHeader), surface, int64(ts))
	if errors.Is(err, ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleStorefrontConfig serves a surface configuration to the storefront.
// Every response is 200 so the theme script can always parse it.
// @Summary Get Storefront Bundle Configuration
// @Description Public endpoint for the theme script. The shop falls back to the Referer host. Errors are returned as {"error": "..."} with status 200.
// @Tags storefront
// @Produce json
// @Param shop query string false "Shop domain"
// @Param surface query string false "Bundle surface" Enums(cart, product_page) default(cart)
// @Success 200 {object} bundle.Config "Configuration"
// @Router /storefront/bundle-config [get]
func (h *Handler) HandleStorefrontConfig(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, h.origin)

	shop := c.Query("shop")
	if shop == "" {
		if ref, err := url.Parse(c.Get(fiber.HeaderReferer)); err == nil {
			shop = ref.Hostname()
		}
	}

	name := c.Query("surface", Cart.Name)
	surface, err := ParseSurface(name)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	cfg, err := h.service.Storefront(c.UserContext(), shop, surface)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Storefront config lookup failed",
			zap.String("shop", shop), zap.Error(err))
		return c.JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cfg)
}
