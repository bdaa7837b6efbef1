package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/artemmak/showreel/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRequestStatus tracks an inbound lead through the admin inbox
type ProjectRequestStatus string

const (
	ProjectRequestStatusNew        ProjectRequestStatus = "new"
	ProjectRequestStatusInProgress ProjectRequestStatus = "in_progress"
	ProjectRequestStatusDone       ProjectRequestStatus = "done"
	ProjectRequestStatusRejected   ProjectRequestStatus = "rejected"
)

func (s ProjectRequestStatus) String() string {
	return string(s)
}

func (s ProjectRequestStatus) Valid() bool {
	switch s {
	case ProjectRequestStatusNew, ProjectRequestStatusInProgress,
		ProjectRequestStatusDone, ProjectRequestStatusRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ProjectRequestStatus
func (s *ProjectRequestStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ProjectRequestStatus(v)
	case []byte:
		*s = ProjectRequestStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ProjectRequestStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ProjectRequestStatus
func (s ProjectRequestStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ProjectRequestStatus: %s", s)
	}
	return string(s), nil
}

// ProjectRequestSource tells which public form produced the request
type ProjectRequestSource string

const (
	ProjectRequestSourceContactForm ProjectRequestSource = "contact_form"
	ProjectRequestSourceCalculator  ProjectRequestSource = "calculator"
)

func (s ProjectRequestSource) Valid() bool {
	return s == ProjectRequestSourceContactForm || s == ProjectRequestSourceCalculator
}

// StringList is a string slice persisted as a jsonb array
type StringList []string

// Value implements the driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements the sql.Scanner interface for StringList
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	var out []string
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// ProjectRequest is a lead submitted from the contact form or the calculator.
// Calculator leads carry the selected options and the server-side estimate.
type ProjectRequest struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	UUID               uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uk_project_requests_uuid" json:"uuid"`
	Source             ProjectRequestSource `gorm:"size:32;not null;index:idx_project_requests_source" json:"source"`
	Name               string               `gorm:"size:255;not null" json:"name"`
	Telegram           *string              `gorm:"size:255" json:"telegram,omitempty"`
	Email              *string              `gorm:"size:255" json:"email,omitempty"`
	Phone              *string              `gorm:"size:50" json:"phone,omitempty"`
	ProjectDescription string               `gorm:"type:text;not null" json:"project_description"`
	DurationSeconds    *int                 `json:"duration_seconds,omitempty"`
	Pace               *string              `gorm:"size:32" json:"pace,omitempty"`
	HasScenario        bool                 `gorm:"not null;default:false" json:"has_scenario"`
	AudioOptions       StringList           `gorm:"type:jsonb;not null;default:'[]'" json:"audio_options"`
	Revisions          *string              `gorm:"size:8" json:"revisions,omitempty"`
	Deadline           *string              `gorm:"size:8" json:"deadline,omitempty"`
	NDA                *string              `gorm:"column:nda;size:16" json:"nda,omitempty"`
	BudgetEstimate     *int64               `json:"budget_estimate,omitempty"`
	Attachments        StringList           `gorm:"type:jsonb;not null;default:'[]'" json:"attachments"`
	Status             ProjectRequestStatus `gorm:"size:32;not null;default:'new';index:idx_project_requests_status" json:"status"`
	IPAddress          string               `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent          string               `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt          time.Time            `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_project_requests_created_at" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (ProjectRequest) TableName() string {
	return "project_requests"
}

// BeforeCreate is called before creating a new record
func (p *ProjectRequest) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectRequestStatusNew
	}
	now := utils.UTCNow()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// CanTransitionTo checks if the request can move to the given status
func (p *ProjectRequest) CanTransitionTo(newStatus ProjectRequestStatus) bool {
	switch p.Status {
	case ProjectRequestStatusNew:
		return newStatus == ProjectRequestStatusInProgress ||
			newStatus == ProjectRequestStatusDone ||
			newStatus == ProjectRequestStatusRejected
	case ProjectRequestStatusInProgress:
		return newStatus == ProjectRequestStatusDone ||
			newStatus == ProjectRequestStatusRejected
	case ProjectRequestStatusRejected:
		return newStatus == ProjectRequestStatusNew
	default:
		return false
	}
}

// ProjectRequestFilter represents filter criteria for project requests
type ProjectRequestFilter struct {
	ID            *uint                 `json:"id,omitempty"`
	UUID          *uuid.UUID            `json:"uuid,omitempty"`
	Source        *ProjectRequestSource `json:"source,omitempty"`
	Status        *ProjectRequestStatus `json:"status,omitempty"`
	Email         *string               `json:"email,omitempty"`
	CreatedAfter  *time.Time            `json:"created_after,omitempty"`
	CreatedBefore *time.Time            `json:"created_before,omitempty"`
}
