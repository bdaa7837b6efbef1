package handlers

import (
	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/middleware"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PricingAdminHandlerInterface defines admin endpoints for the price list
type PricingAdminHandlerInterface interface {
	GetSettings(c fiber.Ctx) error
	UpdateSettings(c fiber.Ctx) error
}

type PricingAdminHandler struct {
	responder
	flow      businessflow.PricingFlow
	validator *validator.Validate
}

func NewPricingAdminHandler(flow businessflow.PricingFlow) PricingAdminHandlerInterface {
	return &PricingAdminHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// GetSettings returns the active price list.
// @Summary Get Pricing Settings (Admin)
// @Tags Admin Pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminPricingSettingsResponse}
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/pricing-settings [get]
func (h *PricingAdminHandler) GetSettings(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/pricing-settings")
	defer cancel()

	res, err := h.flow.AdminGetPricingSettings(ctx)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PRICING_SETTINGS_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// UpdateSettings saves a new price list revision; the newest revision is active.
// @Summary Update Pricing Settings (Admin)
// @Tags Admin Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminUpdatePricingSettingsRequest true "Price list"
// @Success 200 {object} dto.APIResponse{data=dto.AdminPricingSettingsResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/pricing-settings [put]
func (h *PricingAdminHandler) UpdateSettings(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.AdminUpdatePricingSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/pricing-settings")
	defer cancel()

	res, err := h.flow.AdminUpdatePricingSettings(ctx, &req, adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PRICING_SETTINGS_SAVE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
