// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/artemmak/showreel/app/dto"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator with the custom decimal tags used by the DTOs
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimal_gte0", decimalAtLeast(decimal.Zero))
	_ = v.RegisterValidation("decimal_gte1", decimalAtLeast(decimal.NewFromInt(1)))
	return v
}

func decimalAtLeast(min decimal.Decimal) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.GreaterThanOrEqual(min)
	}
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return err.Field() + " must be a valid URL"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "decimal_gte0":
		return err.Field() + " must be a non-negative decimal"
	case "decimal_gte1":
		return err.Field() + " must be a decimal of at least 1"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, getValidationErrorMessage(e))
	}
	return out
}

// responder carries the response envelope and request context helpers shared by every handler
type responder struct{}

func (responder) ErrorResponse(c fiber.Ctx, status int, message, code string, details any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Message: message, Error: dto.ErrorDetail{Code: code, Details: details}})
}

func (responder) SuccessResponse(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

func (r responder) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return r.createRequestContextWithTimeout(c, endpoint, utils.RequestTimeout)
}

func (responder) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	reqID := requestid.FromContext(c)
	if reqID == "" {
		reqID = c.Get("X-Request-ID")
	}
	ctx = logging.WithRequestID(ctx, reqID)
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	return ctx, cancel
}

// businessErrorResponse maps flow errors onto HTTP statuses
func (r responder) businessErrorResponse(c fiber.Ctx, ctx context.Context, err error, fallbackCode string) error {
	status := http.StatusInternalServerError
	switch {
	case businessflow.IsInvalidEstimateRequest(err),
		businessflow.IsInvalidPricingSettings(err),
		businessflow.IsContactRequired(err),
		businessflow.IsInvalidPage(err),
		businessflow.IsInvalidPageSize(err),
		errors.Is(err, businessflow.ErrNameRequired),
		errors.Is(err, businessflow.ErrDescriptionRequired),
		errors.Is(err, businessflow.ErrTooManyAttachments),
		errors.Is(err, businessflow.ErrInvalidProjectRequestID),
		errors.Is(err, businessflow.ErrInvalidStatus),
		errors.Is(err, businessflow.ErrInvalidProjectRequestQuery),
		errors.Is(err, businessflow.ErrSiteContentKeyInvalid),
		errors.Is(err, businessflow.ErrAvailabilityInvalid),
		errors.Is(err, businessflow.ErrProjectSlugInvalid),
		errors.Is(err, businessflow.ErrProjectTitleRequired),
		errors.Is(err, businessflow.ErrInvalidContentBlock),
		errors.Is(err, businessflow.ErrInvalidShowcaseItem):
		status = http.StatusBadRequest
	case businessflow.IsProjectRequestNotFound(err),
		businessflow.IsSiteContentNotFound(err),
		businessflow.IsPricingSettingsNotFound(err),
		businessflow.IsProjectNotFound(err),
		businessflow.IsShowcaseItemNotFound(err):
		status = http.StatusNotFound
	case businessflow.IsInvalidStatusTransition(err):
		status = http.StatusConflict
	case errors.Is(err, businessflow.ErrAdminIDRequired):
		status = http.StatusUnauthorized
	}

	code, message := fallbackCode, "Internal server error"
	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		code = be.Code
		if status != http.StatusInternalServerError {
			message = be.Message
		}
	}

	if status == http.StatusInternalServerError {
		logging.L(ctx).Error("request failed", "code", code, "path", c.Path(), "error", err)
	}
	return r.ErrorResponse(c, status, message, code, nil)
}
