package handlers

import (
	"github.com/artemmak/showreel/app/dto"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type PricingHandlerInterface interface {
	Options(c fiber.Ctx) error
	Estimate(c fiber.Ctx) error
}

// PricingHandler serves the public calculator
type PricingHandler struct {
	responder
	flow      businessflow.PricingFlow
	validator *validator.Validate
}

func NewPricingHandler(flow businessflow.PricingFlow) PricingHandlerInterface {
	return &PricingHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// Options returns the calculator choices and their current prices.
// @Summary Calculator Options
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CalculatorOptionsResponse}
// @Failure 500 {object} dto.APIResponse "Options failed"
// @Router /api/v1/pricing/options [get]
func (h *PricingHandler) Options(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing/options")
	defer cancel()

	res, err := h.flow.CalculatorOptions(ctx)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PRICING_OPTIONS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Estimate prices a calculator selection.
// @Summary Estimate Project Price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.EstimateRequest true "Calculator selection"
// @Success 200 {object} dto.APIResponse{data=dto.EstimateResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Estimate failed"
// @Router /api/v1/pricing/estimate [post]
func (h *PricingHandler) Estimate(c fiber.Ctx) error {
	var req dto.EstimateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/pricing/estimate")
	defer cancel()

	res, err := h.flow.Estimate(ctx, &req)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "ESTIMATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
