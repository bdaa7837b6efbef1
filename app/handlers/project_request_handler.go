package handlers

import (
	"github.com/artemmak/showreel/app/dto"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

type ProjectRequestHandlerInterface interface {
	SubmitContact(c fiber.Ctx) error
	SubmitCalculator(c fiber.Ctx) error
}

// ProjectRequestHandler accepts leads from the public forms
type ProjectRequestHandler struct {
	responder
	flow      businessflow.ProjectRequestFlow
	validator *validator.Validate
}

func NewProjectRequestHandler(flow businessflow.ProjectRequestFlow) ProjectRequestHandlerInterface {
	return &ProjectRequestHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

func (h *ProjectRequestHandler) metadata(c fiber.Ctx) *businessflow.ClientMetadata {
	m := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	m.SetRequestID(requestid.FromContext(c))
	return m
}

// SubmitContact stores a contact form request.
// @Summary Submit Contact Form
// @Tags Project Requests
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact form"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitProjectRequestResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 429 {object} dto.APIResponse "Rate limited"
// @Router /api/v1/requests/contact [post]
func (h *ProjectRequestHandler) SubmitContact(c fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/requests/contact")
	defer cancel()

	res, err := h.flow.SubmitContactRequest(ctx, &req, h.metadata(c))
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_REQUEST_SUBMIT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, res.Message, res)
}

// SubmitCalculator stores a calculator request with a server-side estimate.
// @Summary Submit Calculator Request
// @Tags Project Requests
// @Accept json
// @Produce json
// @Param request body dto.CalculatorProjectRequest true "Calculator request"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitProjectRequestResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 429 {object} dto.APIResponse "Rate limited"
// @Router /api/v1/requests/calculator [post]
func (h *ProjectRequestHandler) SubmitCalculator(c fiber.Ctx) error {
	var req dto.CalculatorProjectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/requests/calculator")
	defer cancel()

	res, err := h.flow.SubmitCalculatorRequest(ctx, &req, h.metadata(c))
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_REQUEST_SUBMIT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, res.Message, res)
}
