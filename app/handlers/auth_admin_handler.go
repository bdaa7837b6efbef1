package handlers

import (
	"errors"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/services"
	"github.com/artemmak/showreel/logging"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdminAuthHandlerInterface defines the admin token endpoints
type AdminAuthHandlerInterface interface {
	Refresh(c fiber.Ctx) error
}

// AdminAuthHandler exchanges admin refresh tokens. Initial tokens are minted by showreelctl.
type AdminAuthHandler struct {
	responder
	tokenService services.TokenService
	validator    *validator.Validate
}

func NewAdminAuthHandler(tokenService services.TokenService) AdminAuthHandlerInterface {
	return &AdminAuthHandler{
		tokenService: tokenService,
		validator:    NewValidator(),
	}
}

// Refresh issues a new token pair from a refresh token
// @Summary Refresh Admin Token
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.AdminRefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AdminTokenDTO}
// @Failure 401 {object} dto.APIResponse "Invalid or expired token"
// @Router /api/v1/admin/auth/refresh [post]
func (h *AdminAuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.AdminRefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationDetails(err))
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/refresh")
	defer cancel()

	access, refresh, err := h.tokenService.RefreshAdminToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrTokenExpired) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token has expired", "TOKEN_EXPIRED", nil)
		}
		if errors.Is(err, services.ErrTokenInvalid) || errors.Is(err, services.ErrTokenRevoked) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "TOKEN_INVALID", nil)
		}
		logging.L(ctx).Error("admin token refresh failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Token refresh failed", "TOKEN_REFRESH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Token refreshed", dto.AdminTokenDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.tokenService.AccessTokenTTL().Seconds()),
	})
}
