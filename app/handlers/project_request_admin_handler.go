package handlers

import (
	"strings"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/middleware"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/artemmak/showreel/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ProjectRequestAdminHandlerInterface defines the admin inbox endpoints
type ProjectRequestAdminHandlerInterface interface {
	List(c fiber.Ctx) error
	UpdateStatus(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

type ProjectRequestAdminHandler struct {
	responder
	flow      businessflow.ProjectRequestFlow
	validator *validator.Validate
}

func NewProjectRequestAdminHandler(flow businessflow.ProjectRequestFlow) ProjectRequestAdminHandlerInterface {
	return &ProjectRequestAdminHandler{
		flow:      flow,
		validator: NewValidator(),
	}
}

func (h *ProjectRequestAdminHandler) bindFilter(c fiber.Ctx) (*dto.AdminListProjectRequestsFilter, error) {
	var filter dto.AdminListProjectRequestsFilter
	if err := c.Bind().Query(&filter); err != nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&filter); err != nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}
	return &filter, nil
}

// List returns stored requests, newest first.
// @Summary List Project Requests (Admin)
// @Tags Admin Project Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, in_progress, done or rejected"
// @Param source query string false "contact_form or calculator"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AdminListProjectRequestsResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/requests [get]
func (h *ProjectRequestAdminHandler) List(c fiber.Ctx) error {
	filter, errResp := h.bindFilter(c)
	if filter == nil {
		return errResp
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/requests")
	defer cancel()

	res, err := h.flow.AdminListProjectRequests(ctx, filter)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_REQUEST_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// UpdateStatus moves a request to a new status.
// @Summary Update Project Request Status (Admin)
// @Tags Admin Project Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Request UUID"
// @Param request body dto.AdminUpdateProjectRequestStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUpdateProjectRequestStatusResponse}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 409 {object} dto.APIResponse "Transition not allowed"
// @Router /api/v1/admin/requests/{uuid}/status [patch]
func (h *ProjectRequestAdminHandler) UpdateStatus(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.AdminUpdateProjectRequestStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/requests/:uuid/status")
	defer cancel()

	res, err := h.flow.AdminUpdateProjectRequestStatus(ctx, strings.Clone(c.Params("uuid")), &req, adminID)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_REQUEST_UPDATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

// Export downloads matching requests as an XLSX workbook.
// @Summary Export Project Requests (Admin)
// @Tags Admin Project Requests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param source query string false "Source filter"
// @Success 200 {file} file "XLSX workbook"
// @Failure 500 {object} dto.APIResponse "Export failed"
// @Router /api/v1/admin/requests/export [get]
func (h *ProjectRequestAdminHandler) Export(c fiber.Ctx) error {
	filter, errResp := h.bindFilter(c)
	if filter == nil {
		return errResp
	}

	ctx, cancel := h.createRequestContextWithTimeout(c, "/api/v1/admin/requests/export", 2*utils.RequestTimeout)
	defer cancel()

	res, err := h.flow.AdminExportProjectRequests(ctx, filter)
	if err != nil {
		return h.businessErrorResponse(c, ctx, err, "PROJECT_REQUEST_EXPORT_FAILED")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+res.Filename)
	return c.Send(res.Data)
}
