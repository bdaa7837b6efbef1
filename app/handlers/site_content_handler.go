package handlers

import (
	"strings"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/middleware"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type SiteContentHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
}

// SiteContentHandler serves public site content
type SiteContentHandler struct {
	responder
	flow businessflow.SiteContentFlow
}

func NewSiteContentHandler(flow businessflow.SiteContentFlow) SiteContentHandlerInterface {
	return &SiteContentHandler{flow: flow}
}

// List returns every content entry.
// @Summary List Site Content
// @Tags Site Content
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListSiteContentResponse}
// @Router /api/v1/content [get]
func (h *SiteContentHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/content")
	defer cancel()

	res, err := h.flow.ListSiteContent(ctx)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SITE_CONTENT_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Get returns a single content entry.
// @Summary Get Site Content
// @Tags Site Content
// @Produce json
// @Param key path string true "Content key"
// @Success 200 {object} dto.APIResponse{data=dto.GetSiteContentResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/content/{key} [get]
func (h *SiteContentHandler) Get(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/content/:key")
	defer cancel()

	res, err := h.flow.GetSiteContent(ctx, c.Params("key"))
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SITE_CONTENT_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

type SiteContentAdminHandlerInterface interface {
	Upsert(c fiber.Ctx) error
}

type SiteContentAdminHandler struct {
	responder
	flow      businessflow.SiteContentFlow
	validator *validator.Validate
}

func NewSiteContentAdminHandler(flow businessflow.SiteContentFlow) SiteContentAdminHandlerInterface {
	return &SiteContentAdminHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// Upsert creates or replaces a content entry.
// @Summary Upsert Site Content (Admin)
// @Tags Admin Site Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Content key"
// @Param request body dto.AdminUpsertSiteContentRequest true "Content value"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpsertSiteContentResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/content/{key} [put]
func (h *SiteContentAdminHandler) Upsert(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.AdminUpsertSiteContentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.Key = strings.Clone(c.Params("key"))
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/content/:key")
	defer cancel()

	res, err := h.flow.AdminUpsertSiteContent(ctx, &req, adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SITE_CONTENT_SAVE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
