// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/utils"
)

// ClientMetadata holds client information recorded with submitted requests
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// normalizePagination applies defaults and bounds to page parameters
func normalizePagination(page, pageSize int) (int, int, error) {
	if page < 0 {
		return 0, 0, NewBusinessError("INVALID_PAGE", "Page must be positive", ErrInvalidPage)
	}
	if pageSize < 0 || pageSize > utils.MaxPageSize {
		return 0, 0, NewBusinessErrorf("INVALID_PAGE_SIZE", "Page size must be between 1 and %d", ErrInvalidPageSize, utils.MaxPageSize)
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = utils.DefaultPageSize
	}
	return page, pageSize, nil
}

// ToProjectRequestDTO converts a stored request to its admin representation
func ToProjectRequestDTO(pr models.ProjectRequest) dto.ProjectRequestDTO {
	audio := []string(pr.AudioOptions)
	if audio == nil {
		audio = []string{}
	}
	attachments := []string(pr.Attachments)
	if attachments == nil {
		attachments = []string{}
	}
	return dto.ProjectRequestDTO{
		UUID:               pr.UUID.String(),
		Source:             string(pr.Source),
		Name:               pr.Name,
		Telegram:           pr.Telegram,
		Email:              pr.Email,
		Phone:              pr.Phone,
		ProjectDescription: pr.ProjectDescription,
		DurationSeconds:    pr.DurationSeconds,
		Pace:               pr.Pace,
		HasScenario:        pr.HasScenario,
		AudioOptions:       audio,
		Revisions:          pr.Revisions,
		Deadline:           pr.Deadline,
		NDA:                pr.NDA,
		BudgetEstimate:     pr.BudgetEstimate,
		Attachments:        attachments,
		Status:             pr.Status.String(),
		CreatedAt:          pr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          pr.UpdatedAt.Format(time.RFC3339),
	}
}

// ToSiteContentItem converts a content row to its API representation
func ToSiteContentItem(sc models.SiteContent) dto.SiteContentItem {
	return dto.SiteContentItem{
		Key:         sc.ID,
		Value:       sc.Value,
		Description: sc.Description,
		UpdatedAt:   sc.UpdatedAt.Format(time.RFC3339),
	}
}
