package models

import (
	"time"

	"github.com/artemmak/showreel/utils"
	"gorm.io/gorm"
)

// Well-known site content keys
const (
	SiteContentAvailabilityStatus = "availability_status"
	SiteContentHeroTitle          = "hero_title"
	SiteContentHeroSubtitle       = "hero_subtitle"
)

// Availability values accepted for SiteContentAvailabilityStatus
const (
	AvailabilityAvailable = "available"
	AvailabilityMedium    = "medium"
	AvailabilityBusy      = "busy"
)

// SiteContent is a key/value pair editable from the admin panel.
// Table: site_content
type SiteContent struct {
	ID          string    `gorm:"primaryKey;size:100" json:"id"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (SiteContent) TableName() string {
	return "site_content"
}

func (s *SiteContent) BeforeSave(tx *gorm.DB) error {
	s.UpdatedAt = utils.UTCNow()
	return nil
}

type SiteContentFilter struct {
	IDs []string `json:"ids,omitempty"`
}
