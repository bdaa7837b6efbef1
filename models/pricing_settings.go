package models

import (
	"time"

	"github.com/artemmak/showreel/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingSettings stores one revision of the calculator price list.
// Rows are append-only; the latest row (by created_at) is the active one.
// Table: pricing_settings
type PricingSettings struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	BaseFramePrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_frame_price"`
	MusicPrice            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"music_price"`
	LipsyncPricePer30s    decimal.Decimal `gorm:"column:lipsync_price_per_30s;type:numeric(12,2);not null" json:"lipsync_price_per_30s"`
	Revisions4Price       decimal.Decimal `gorm:"column:revisions_4_price;type:numeric(12,2);not null" json:"revisions_4_price"`
	Revisions8Price       decimal.Decimal `gorm:"column:revisions_8_price;type:numeric(12,2);not null" json:"revisions_8_price"`
	ScenarioPricePerMin   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"scenario_price_per_min"`
	Deadline20Multiplier  decimal.Decimal `gorm:"column:deadline_20_multiplier;type:numeric(6,3);not null" json:"deadline_20_multiplier"`
	Deadline10Multiplier  decimal.Decimal `gorm:"column:deadline_10_multiplier;type:numeric(6,3);not null" json:"deadline_10_multiplier"`
	NDAPartialMultiplier  decimal.Decimal `gorm:"column:nda_partial_multiplier;type:numeric(6,3);not null" json:"nda_partial_multiplier"`
	NDAFullMultiplier     decimal.Decimal `gorm:"column:nda_full_multiplier;type:numeric(6,3);not null" json:"nda_full_multiplier"`
	VolumeDiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"volume_discount_percent"`
	HidePricing           bool            `gorm:"not null;default:false" json:"hide_pricing"`
	UpdatedBy             *uint           `json:"updated_by,omitempty"`
	CreatedAt             time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_pricing_settings_created_at" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (PricingSettings) TableName() string {
	return "pricing_settings"
}

func (p *PricingSettings) BeforeCreate(tx *gorm.DB) error {
	now := utils.UTCNow()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

type PricingSettingsFilter struct {
	HidePricing   *bool      `json:"hide_pricing,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
