package handlers

import (
	"strings"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/middleware"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type PortfolioHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
}

// PortfolioHandler serves published projects
type PortfolioHandler struct {
	responder
	flow      businessflow.PortfolioFlow
	validator *validator.Validate
}

func NewPortfolioHandler(flow businessflow.PortfolioFlow) PortfolioHandlerInterface {
	return &PortfolioHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// List returns published projects in display order.
// @Summary List Projects
// @Tags Portfolio
// @Produce json
// @Param tag query string false "Only projects with this tag"
// @Success 200 {object} dto.APIResponse{data=dto.ListProjectsResponse}
// @Router /api/v1/projects [get]
func (h *PortfolioHandler) List(c fiber.Ctx) error {
	var query dto.ListProjectsQuery
	if err := c.Bind().Query(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&query); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/projects")
	defer cancel()

	res, err := h.flow.ListProjects(ctx, &query)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Get returns a published project.
// @Summary Get Project
// @Tags Portfolio
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} dto.APIResponse{data=dto.GetProjectResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/projects/{slug} [get]
func (h *PortfolioHandler) Get(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/projects/:slug")
	defer cancel()

	res, err := h.flow.GetProject(ctx, strings.Clone(c.Params("slug")))
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

type PortfolioAdminHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

type PortfolioAdminHandler struct {
	responder
	flow      businessflow.PortfolioFlow
	validator *validator.Validate
}

func NewPortfolioAdminHandler(flow businessflow.PortfolioFlow) PortfolioAdminHandlerInterface {
	return &PortfolioAdminHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

// List returns drafts and published projects.
// @Summary List Projects (Admin)
// @Tags Admin Portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ListProjectsResponse}
// @Router /api/v1/admin/projects [get]
func (h *PortfolioAdminHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/projects")
	defer cancel()

	res, err := h.flow.AdminListProjects(ctx)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Get returns a project whether or not it is published.
// @Summary Get Project (Admin)
// @Tags Admin Portfolio
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Project slug"
// @Success 200 {object} dto.APIResponse{data=dto.GetProjectResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/projects/{slug} [get]
func (h *PortfolioAdminHandler) Get(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/projects/:slug")
	defer cancel()

	res, err := h.flow.AdminGetProject(ctx, strings.Clone(c.Params("slug")))
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_FETCH_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Upsert creates or replaces the project at slug.
// @Summary Upsert Project (Admin)
// @Tags Admin Portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Project slug"
// @Param request body dto.AdminUpsertProjectRequest true "Project"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpsertProjectResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/projects/{slug} [put]
func (h *PortfolioAdminHandler) Upsert(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.AdminUpsertProjectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.Slug = strings.Clone(c.Params("slug"))
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/projects/:slug")
	defer cancel()

	res, err := h.flow.AdminUpsertProject(ctx, &req, adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_SAVE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Delete removes the project at slug.
// @Summary Delete Project (Admin)
// @Tags Admin Portfolio
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Project slug"
// @Success 200 {object} dto.APIResponse{data=dto.AdminDeleteResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/projects/{slug} [delete]
func (h *PortfolioAdminHandler) Delete(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/projects/:slug")
	defer cancel()

	res, err := h.flow.AdminDeleteProject(ctx, strings.Clone(c.Params("slug")), adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_DELETE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
