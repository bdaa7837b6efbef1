// Package businessflow contains the core business logic and use cases of the studio backend
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Pricing errors
	ErrPricingSettingsNotFound = errors.New("pricing settings not found")
	ErrInvalidPricingSettings  = errors.New("invalid pricing settings")
	ErrInvalidEstimateRequest  = errors.New("invalid estimate request")

	// Project request errors
	ErrNameRequired               = errors.New("name is required")
	ErrDescriptionRequired        = errors.New("project description is required")
	ErrContactRequired            = errors.New("telegram or email is required")
	ErrTooManyAttachments         = errors.New("too many attachments")
	ErrProjectRequestNotFound     = errors.New("project request not found")
	ErrInvalidProjectRequestID    = errors.New("invalid project request id")
	ErrInvalidStatus              = errors.New("invalid project request status")
	ErrInvalidStatusTransition    = errors.New("project request status transition not allowed")
	ErrInvalidProjectRequestQuery = errors.New("invalid project request query")

	// Site content errors
	ErrSiteContentNotFound   = errors.New("site content not found")
	ErrSiteContentKeyInvalid = errors.New("site content key is invalid")
	ErrAvailabilityInvalid   = errors.New("availability status must be available, medium or busy")

	// Portfolio errors
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectSlugInvalid   = errors.New("project slug is invalid")
	ErrProjectTitleRequired = errors.New("project title is required")
	ErrInvalidContentBlock  = errors.New("invalid content block")
	ErrShowcaseItemNotFound = errors.New("showcase item not found")
	ErrInvalidShowcaseItem  = errors.New("invalid showcase item")

	// Pagination errors
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidPageSize = errors.New("invalid page size")

	// Auth errors
	ErrAdminIDRequired = errors.New("admin id is required")
)

// BusinessError carries a stable machine-readable code for the HTTP layer
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsPricingSettingsNotFound(err error) bool {
	return errors.Is(err, ErrPricingSettingsNotFound)
}

func IsInvalidPricingSettings(err error) bool {
	return errors.Is(err, ErrInvalidPricingSettings)
}

func IsInvalidEstimateRequest(err error) bool {
	return errors.Is(err, ErrInvalidEstimateRequest)
}

func IsContactRequired(err error) bool {
	return errors.Is(err, ErrContactRequired)
}

func IsProjectRequestNotFound(err error) bool {
	return errors.Is(err, ErrProjectRequestNotFound)
}

func IsInvalidStatusTransition(err error) bool {
	return errors.Is(err, ErrInvalidStatusTransition)
}

func IsSiteContentNotFound(err error) bool {
	return errors.Is(err, ErrSiteContentNotFound)
}

func IsProjectNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}

func IsShowcaseItemNotFound(err error) bool {
	return errors.Is(err, ErrShowcaseItemNotFound)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
