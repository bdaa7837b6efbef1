package dto

// EstimateRequest is the calculator form posted by the site
type EstimateRequest struct {
	DurationSeconds int    `json:"duration_seconds" validate:"min=0,max=600"`
	Pace            string `json:"pace" validate:"required,oneof=standard dynamic ultra"`
	HasScenario     bool   `json:"has_scenario"`
	HasMusic        bool   `json:"has_music"`
	HasLipsync      bool   `json:"has_lipsync"`
	Revisions       int    `json:"revisions" validate:"required,oneof=2 4 8"`
	NDA             string `json:"nda" validate:"required,oneof=none partial full"`
	Deadline        int    `json:"deadline" validate:"required,oneof=30 20 10"`
}

// EstimateBreakdown itemizes an estimate. Amounts are decimal strings.
type EstimateBreakdown struct {
	BaseCost       string `json:"base_cost"`
	ScenarioCost   string `json:"scenario_cost"`
	AudioCost      string `json:"audio_cost"`
	RevisionCost   string `json:"revision_cost"`
	Subtotal       string `json:"subtotal"`
	NDAMultiplier  string `json:"nda_multiplier"`
	RushMultiplier string `json:"rush_multiplier"`
}

// EstimateResponse carries the computed price. Monetary fields are nil when pricing is hidden.
type EstimateResponse struct {
	Message             string             `json:"message"`
	DurationSeconds     int                `json:"duration_seconds"`
	FrameCount          int                `json:"frame_count"`
	PricingHidden       bool               `json:"pricing_hidden"`
	Currency            string             `json:"currency"`
	TotalBeforeDiscount *int64             `json:"total_before_discount,omitempty"`
	DiscountPercent     int                `json:"discount_percent"`
	DiscountedPrice     *int64             `json:"discounted_price,omitempty"`
	HasDiscount         bool               `json:"has_discount"`
	FinalPrice          *int64             `json:"final_price,omitempty"`
	Breakdown           *EstimateBreakdown `json:"breakdown,omitempty"`
}

type PaceOption struct {
	Value           string  `json:"value"`
	SecondsPerFrame float64 `json:"seconds_per_frame"`
}

type TierOption struct {
	Value string  `json:"value"`
	Price *string `json:"price,omitempty"`
}

type MultiplierOption struct {
	Value      string  `json:"value"`
	Multiplier *string `json:"multiplier,omitempty"`
}

type DiscountTierOption struct {
	MinSeconds int `json:"min_seconds"`
	Percent    int `json:"percent"`
}

type SliderOptions struct {
	MinSeconds int   `json:"min_seconds"`
	MaxSeconds int   `json:"max_seconds"`
	MaxStep    int   `json:"max_step"`
	Stops      []int `json:"stops"`
}

// CalculatorOptionsResponse describes every choice the calculator UI offers
type CalculatorOptionsResponse struct {
	Message             string               `json:"message"`
	PricingHidden       bool                 `json:"pricing_hidden"`
	Currency            string               `json:"currency"`
	BaseFramePrice      *string              `json:"base_frame_price,omitempty"`
	ScenarioPricePerMin *string              `json:"scenario_price_per_min,omitempty"`
	MusicPrice          *string              `json:"music_price,omitempty"`
	LipsyncPricePer30s  *string              `json:"lipsync_price_per_30s,omitempty"`
	Paces               []PaceOption         `json:"paces"`
	Revisions           []TierOption         `json:"revisions"`
	NDA                 []MultiplierOption   `json:"nda"`
	Deadlines           []MultiplierOption   `json:"deadlines"`
	DiscountTiers       []DiscountTierOption `json:"discount_tiers"`
	Slider              SliderOptions        `json:"slider"`
}

// PricingSettingsDTO mirrors the active price list. Amounts are decimal strings.
type PricingSettingsDTO struct {
	BaseFramePrice        string `json:"base_frame_price" validate:"required,decimal_gte0"`
	MusicPrice            string `json:"music_price" validate:"required,decimal_gte0"`
	LipsyncPricePer30s    string `json:"lipsync_price_per_30s" validate:"required,decimal_gte0"`
	Revisions4Price       string `json:"revisions_4_price" validate:"required,decimal_gte0"`
	Revisions8Price       string `json:"revisions_8_price" validate:"required,decimal_gte0"`
	ScenarioPricePerMin   string `json:"scenario_price_per_min" validate:"required,decimal_gte0"`
	Deadline20Multiplier  string `json:"deadline_20_multiplier" validate:"required,decimal_gte1"`
	Deadline10Multiplier  string `json:"deadline_10_multiplier" validate:"required,decimal_gte1"`
	NDAPartialMultiplier  string `json:"nda_partial_multiplier" validate:"required,decimal_gte1"`
	NDAFullMultiplier     string `json:"nda_full_multiplier" validate:"required,decimal_gte1"`
	VolumeDiscountPercent string `json:"volume_discount_percent" validate:"required,decimal_gte0"`
	HidePricing           bool   `json:"hide_pricing"`
}

// AdminUpdatePricingSettingsRequest saves a new price list revision
type AdminUpdatePricingSettingsRequest struct {
	PricingSettingsDTO
}

type AdminPricingSettingsResponse struct {
	Message   string             `json:"message"`
	Settings  PricingSettingsDTO `json:"settings"`
	UpdatedBy *uint              `json:"updated_by,omitempty"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}
