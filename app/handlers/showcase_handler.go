package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/middleware"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type ShowcaseHandlerInterface interface {
	Get(c fiber.Ctx) error
}

// ShowcaseHandler serves the landing page lists
type ShowcaseHandler struct {
	responder
	flow      businessflow.ShowcaseFlow
	validator *validator.Validate
}

func NewShowcaseHandler(flow businessflow.ShowcaseFlow) ShowcaseHandlerInterface {
	return &ShowcaseHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// Get returns hero stats, social links and AI tools.
// @Summary Get Showcase
// @Tags Showcase
// @Produce json
// @Param location query string false "header, footer or both"
// @Success 200 {object} dto.APIResponse{data=dto.ShowcaseResponse}
// @Router /api/v1/showcase [get]
func (h *ShowcaseHandler) Get(c fiber.Ctx) error {
	var query dto.ShowcaseQuery
	if err := c.Bind().Query(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/showcase")
	defer cancel()

	res, err := h.flow.GetShowcase(ctx, &query)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SHOWCASE_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

type ShowcaseAdminHandlerInterface interface {
	Get(c fiber.Ctx) error
	UpsertHeroStat(c fiber.Ctx) error
	UpsertSocialLink(c fiber.Ctx) error
	UpsertAITool(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

type ShowcaseAdminHandler struct {
	responder
	flow      businessflow.ShowcaseFlow
	validator *validator.Validate
}

func NewShowcaseAdminHandler(flow businessflow.ShowcaseFlow) ShowcaseAdminHandlerInterface {
	return &ShowcaseAdminHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// Get returns every showcase entry including hidden ones.
// @Summary Get Showcase (Admin)
// @Tags Admin Showcase
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ShowcaseResponse}
// @Router /api/v1/admin/showcase [get]
func (h *ShowcaseAdminHandler) Get(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/showcase")
	defer cancel()

	res, err := h.flow.AdminGetShowcase(ctx)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SHOWCASE_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// UpsertHeroStat creates a hero stat, or updates the one with the given id.
// @Summary Upsert Hero Stat (Admin)
// @Tags Admin Showcase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminUpsertHeroStatRequest true "Hero stat"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpsertShowcaseItemResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/showcase/hero-stats [put]
func (h *ShowcaseAdminHandler) UpsertHeroStat(c fiber.Ctx) error {
	var req dto.AdminUpsertHeroStatRequest
	return h.upsert(c, &req, "/api/v1/admin/showcase/hero-stats", func(ctx context.Context, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
		return h.flow.AdminUpsertHeroStat(ctx, &req, adminID)
	})
}

// UpsertSocialLink creates a social link, or updates the one with the given id.
// @Summary Upsert Social Link (Admin)
// @Tags Admin Showcase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminUpsertSocialLinkRequest true "Social link"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpsertShowcaseItemResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/showcase/social-links [put]
func (h *ShowcaseAdminHandler) UpsertSocialLink(c fiber.Ctx) error {
	var req dto.AdminUpsertSocialLinkRequest
	return h.upsert(c, &req, "/api/v1/admin/showcase/social-links", func(ctx context.Context, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
		return h.flow.AdminUpsertSocialLink(ctx, &req, adminID)
	})
}

// UpsertAITool creates an AI tool credit, or updates the one with the given id.
// @Summary Upsert AI Tool (Admin)
// @Tags Admin Showcase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminUpsertAIToolRequest true "AI tool"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpsertShowcaseItemResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/showcase/ai-tools [put]
func (h *ShowcaseAdminHandler) UpsertAITool(c fiber.Ctx) error {
	var req dto.AdminUpsertAIToolRequest
	return h.upsert(c, &req, "/api/v1/admin/showcase/ai-tools", func(ctx context.Context, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
		return h.flow.AdminUpsertAITool(ctx, &req, adminID)
	})
}

// upsert binds and validates req, then hands it to save under the request context
func (h *ShowcaseAdminHandler) upsert(c fiber.Ctx, req any, route string, save func(context.Context, uint) (*dto.AdminUpsertShowcaseItemResponse, error)) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}
	if err := c.Bind().JSON(req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, route)
	defer cancel()

	res, err := save(ctx, adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SHOWCASE_SAVE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Delete removes an entry from one of the showcase lists.
// @Summary Delete Showcase Item (Admin)
// @Tags Admin Showcase
// @Produce json
// @Security BearerAuth
// @Param kind path string true "hero-stats, social-links or ai-tools"
// @Param id path int true "Entry id"
// @Success 200 {object} dto.APIResponse{data=dto.AdminDeleteResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/showcase/{kind}/{id} [delete]
func (h *ShowcaseAdminHandler) Delete(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_REQUEST", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/showcase/:kind/:id")
	defer cancel()

	kind := businessflow.ShowcaseKind(strings.Clone(c.Params("kind")))
	res, err := h.flow.AdminDeleteShowcaseItem(ctx, kind, uint(id), adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "SHOWCASE_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
