package businessflow

import (
	"context"
	"strconv"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/pricing"
	"github.com/artemmak/showreel/repository"
	"github.com/artemmak/showreel/utils"
	"github.com/shopspring/decimal"
)

// PricingFlow serves the public calculator and the admin price list
type PricingFlow interface {
	Estimate(ctx context.Context, req *dto.EstimateRequest) (*dto.EstimateResponse, error)
	Quote(ctx context.Context, req *dto.EstimateRequest) (*pricing.Result, error)
	CalculatorOptions(ctx context.Context) (*dto.CalculatorOptionsResponse, error)
	AdminGetPricingSettings(ctx context.Context) (*dto.AdminPricingSettingsResponse, error)
	AdminUpdatePricingSettings(ctx context.Context, req *dto.AdminUpdatePricingSettingsRequest, adminID uint) (*dto.AdminPricingSettingsResponse, error)
}

type PricingFlowImpl struct {
	settingsRepo repository.PricingSettingsRepository
}

func NewPricingFlow(settingsRepo repository.PricingSettingsRepository) PricingFlow {
	return &PricingFlowImpl{settingsRepo: settingsRepo}
}

// ToPricingRequest validates raw calculator input and converts it to an engine request
func ToPricingRequest(req *dto.EstimateRequest) (pricing.Request, error) {
	if req == nil {
		return pricing.Request{}, NewBusinessError("INVALID_ESTIMATE_REQUEST", "Estimate request is required", ErrInvalidEstimateRequest)
	}
	if req.DurationSeconds < 0 {
		return pricing.Request{}, NewBusinessError("INVALID_DURATION", "Duration must not be negative", ErrInvalidEstimateRequest)
	}
	pace, err := pricing.ParsePace(req.Pace)
	if err != nil {
		return pricing.Request{}, NewBusinessError("INVALID_PACE", "Pace must be standard, dynamic or ultra", ErrInvalidEstimateRequest)
	}
	revisions, err := pricing.ParseRevisionsTier(strconv.Itoa(req.Revisions))
	if err != nil {
		return pricing.Request{}, NewBusinessError("INVALID_REVISIONS", "Revisions must be 2, 4 or 8", ErrInvalidEstimateRequest)
	}
	nda, err := pricing.ParseNDATier(req.NDA)
	if err != nil {
		return pricing.Request{}, NewBusinessError("INVALID_NDA", "NDA must be none, partial or full", ErrInvalidEstimateRequest)
	}
	rush, err := pricing.ParseRushTier(strconv.Itoa(req.Deadline))
	if err != nil {
		return pricing.Request{}, NewBusinessError("INVALID_DEADLINE", "Deadline must be 30, 20 or 10 days", ErrInvalidEstimateRequest)
	}

	return pricing.Request{
		DurationSeconds: req.DurationSeconds,
		Pace:            pace,
		HasScenario:     req.HasScenario,
		HasMusic:        req.HasMusic,
		HasLipsync:      req.HasLipsync,
		Revisions:       revisions,
		NDA:             nda,
		Rush:            rush,
	}, nil
}

// Estimate prices a calculator request against the active price list
func (f *PricingFlowImpl) Estimate(ctx context.Context, req *dto.EstimateRequest) (*dto.EstimateResponse, error) {
	preq, err := ToPricingRequest(req)
	if err != nil {
		return nil, err
	}

	cfg, hidden, err := f.activeConfig(ctx)
	if err != nil {
		return nil, err
	}

	res := pricing.Compute(preq, cfg)
	observeEstimate(string(preq.Pace), res.DiscountPercent, res.FinalPrice())

	resp := &dto.EstimateResponse{
		Message:         "Estimate calculated successfully",
		DurationSeconds: preq.DurationSeconds,
		FrameCount:      res.FrameCount,
		PricingHidden:   hidden,
		Currency:        utils.RubleCurrency,
		DiscountPercent: res.DiscountPercent,
		HasDiscount:     res.HasDiscount,
	}
	if hidden {
		resp.Message = "Pricing is available on request"
		return resp, nil
	}

	resp.TotalBeforeDiscount = utils.ToPtr(res.TotalBeforeDiscount)
	resp.DiscountedPrice = utils.ToPtr(res.DiscountedPrice)
	resp.FinalPrice = utils.ToPtr(res.FinalPrice())
	resp.Breakdown = &dto.EstimateBreakdown{
		BaseCost:       res.Breakdown.BaseCost.String(),
		ScenarioCost:   res.Breakdown.ScenarioCost.String(),
		AudioCost:      res.Breakdown.AudioCost.String(),
		RevisionCost:   res.Breakdown.RevisionCost.String(),
		Subtotal:       res.Breakdown.Subtotal.String(),
		NDAMultiplier:  res.Breakdown.NDAMultiplier.String(),
		RushMultiplier: res.Breakdown.RushMultiplier.String(),
	}
	return resp, nil
}

// Quote returns the raw engine result regardless of the hide_pricing flag
func (f *PricingFlowImpl) Quote(ctx context.Context, req *dto.EstimateRequest) (*pricing.Result, error) {
	preq, err := ToPricingRequest(req)
	if err != nil {
		return nil, err
	}
	cfg, _, err := f.activeConfig(ctx)
	if err != nil {
		return nil, err
	}
	res := pricing.Compute(preq, cfg)
	return &res, nil
}

// CalculatorOptions lists every calculator choice with its current price
func (f *PricingFlowImpl) CalculatorOptions(ctx context.Context) (*dto.CalculatorOptionsResponse, error) {
	cfg, hidden, err := f.activeConfig(ctx)
	if err != nil {
		return nil, err
	}

	price := func(d decimal.Decimal) *string {
		if hidden {
			return nil
		}
		return utils.ToPtr(d.String())
	}

	paces := make([]dto.PaceOption, 0, len(pricing.Paces()))
	for _, p := range pricing.Paces() {
		paces = append(paces, dto.PaceOption{Value: string(p), SecondsPerFrame: p.SecondsPerFrame()})
	}

	revisions := []dto.TierOption{
		{Value: pricing.Revisions2.String(), Price: price(decimal.Zero)},
		{Value: pricing.Revisions4.String(), Price: price(cfg.Revisions4Price)},
		{Value: pricing.Revisions8.String(), Price: price(cfg.Revisions8Price)},
	}

	nda := []dto.MultiplierOption{
		{Value: string(pricing.NDANone), Multiplier: price(decimal.NewFromInt(1))},
		{Value: string(pricing.NDAPartial), Multiplier: price(cfg.NDAPartialMultiplier)},
		{Value: string(pricing.NDAFull), Multiplier: price(cfg.NDAFullMultiplier)},
	}

	deadlines := []dto.MultiplierOption{
		{Value: pricing.Rush30.String(), Multiplier: price(decimal.NewFromInt(1))},
		{Value: pricing.Rush20.String(), Multiplier: price(cfg.Deadline20Multiplier)},
		{Value: pricing.Rush10.String(), Multiplier: price(cfg.Deadline10Multiplier)},
	}

	tiers := make([]dto.DiscountTierOption, 0, len(pricing.DiscountTiers()))
	for _, t := range pricing.DiscountTiers() {
		tiers = append(tiers, dto.DiscountTierOption{MinSeconds: t.MinSeconds, Percent: t.Percent})
	}

	stops := pricing.SliderStops()
	return &dto.CalculatorOptionsResponse{
		Message:             "Calculator options retrieved successfully",
		PricingHidden:       hidden,
		Currency:            utils.RubleCurrency,
		BaseFramePrice:      price(cfg.BaseFramePrice),
		ScenarioPricePerMin: price(cfg.ScenarioPricePerMin),
		MusicPrice:          price(cfg.MusicPrice),
		LipsyncPricePer30s:  price(cfg.LipsyncPricePer30s),
		Paces:               paces,
		Revisions:           revisions,
		NDA:                 nda,
		Deadlines:           deadlines,
		DiscountTiers:       tiers,
		Slider: dto.SliderOptions{
			MinSeconds: stops[0],
			MaxSeconds: stops[len(stops)-1],
			MaxStep:    len(stops) - 1,
			Stops:      stops,
		},
	}, nil
}

// AdminGetPricingSettings returns the active price list
func (f *PricingFlowImpl) AdminGetPricingSettings(ctx context.Context) (*dto.AdminPricingSettingsResponse, error) {
	row, err := f.settingsRepo.Latest(ctx)
	if err != nil {
		return nil, NewBusinessError("PRICING_SETTINGS_FETCH_FAILED", "Failed to fetch pricing settings", err)
	}
	if row == nil {
		return &dto.AdminPricingSettingsResponse{
			Message:  "Default pricing settings",
			Settings: ConfigToDTO(pricing.DefaultConfig(), false),
		}, nil
	}

	return &dto.AdminPricingSettingsResponse{
		Message:   "Pricing settings retrieved successfully",
		Settings:  SettingsToDTO(row),
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: row.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// AdminUpdatePricingSettings stores a new price list revision (latest row wins)
func (f *PricingFlowImpl) AdminUpdatePricingSettings(ctx context.Context, req *dto.AdminUpdatePricingSettingsRequest, adminID uint) (*dto.AdminPricingSettingsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_PRICING_SETTINGS", "Pricing settings are required", ErrInvalidPricingSettings)
	}
	if adminID == 0 {
		return nil, NewBusinessError("ADMIN_ID_REQUIRED", "Admin id is required", ErrAdminIDRequired)
	}

	cfg, err := DTOToConfig(req.PricingSettingsDTO)
	if err != nil {
		return nil, NewBusinessError("INVALID_PRICING_SETTINGS", "Pricing settings contain a malformed amount", ErrInvalidPricingSettings)
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewBusinessErrorf("INVALID_PRICING_SETTINGS", "Invalid pricing settings: %s", ErrInvalidPricingSettings, err.Error())
	}

	now := utils.UTCNow()
	row := ConfigToSettings(cfg, req.HidePricing)
	row.UpdatedBy = utils.ToPtr(adminID)
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := f.settingsRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("PRICING_SETTINGS_SAVE_FAILED", "Failed to save pricing settings", err)
	}

	logging.L(ctx).Info("pricing settings updated",
		"admin_id", adminID,
		"settings_id", row.ID,
		"base_frame_price", row.BaseFramePrice.String(),
		"hide_pricing", row.HidePricing,
	)

	return &dto.AdminPricingSettingsResponse{
		Message:   "Pricing settings saved successfully",
		Settings:  SettingsToDTO(row),
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: row.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// activeConfig loads the price list fresh on every call; an empty table yields the defaults
func (f *PricingFlowImpl) activeConfig(ctx context.Context) (pricing.Config, bool, error) {
	row, err := f.settingsRepo.Latest(ctx)
	if err != nil {
		return pricing.Config{}, false, NewBusinessError("PRICING_SETTINGS_FETCH_FAILED", "Failed to fetch pricing settings", err)
	}
	if row == nil {
		logging.L(ctx).Warn("no pricing settings stored, using defaults")
		return pricing.DefaultConfig(), false, nil
	}

	cfg := SettingsToConfig(row)
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, false, NewBusinessErrorf("INVALID_PRICING_SETTINGS", "Stored pricing settings are invalid: %s", ErrInvalidPricingSettings, err.Error())
	}
	return cfg, row.HidePricing, nil
}

func SettingsToConfig(s *models.PricingSettings) pricing.Config {
	return pricing.Config{
		BaseFramePrice:        s.BaseFramePrice,
		MusicPrice:            s.MusicPrice,
		LipsyncPricePer30s:    s.LipsyncPricePer30s,
		Revisions4Price:       s.Revisions4Price,
		Revisions8Price:       s.Revisions8Price,
		ScenarioPricePerMin:   s.ScenarioPricePerMin,
		Deadline20Multiplier:  s.Deadline20Multiplier,
		Deadline10Multiplier:  s.Deadline10Multiplier,
		NDAPartialMultiplier:  s.NDAPartialMultiplier,
		NDAFullMultiplier:     s.NDAFullMultiplier,
		VolumeDiscountPercent: s.VolumeDiscountPercent,
	}
}

func ConfigToSettings(cfg pricing.Config, hide bool) *models.PricingSettings {
	return &models.PricingSettings{
		BaseFramePrice:        cfg.BaseFramePrice,
		MusicPrice:            cfg.MusicPrice,
		LipsyncPricePer30s:    cfg.LipsyncPricePer30s,
		Revisions4Price:       cfg.Revisions4Price,
		Revisions8Price:       cfg.Revisions8Price,
		ScenarioPricePerMin:   cfg.ScenarioPricePerMin,
		Deadline20Multiplier:  cfg.Deadline20Multiplier,
		Deadline10Multiplier:  cfg.Deadline10Multiplier,
		NDAPartialMultiplier:  cfg.NDAPartialMultiplier,
		NDAFullMultiplier:     cfg.NDAFullMultiplier,
		VolumeDiscountPercent: cfg.VolumeDiscountPercent,
		HidePricing:           hide,
	}
}

func SettingsToDTO(s *models.PricingSettings) dto.PricingSettingsDTO {
	return ConfigToDTO(SettingsToConfig(s), s.HidePricing)
}

func ConfigToDTO(cfg pricing.Config, hide bool) dto.PricingSettingsDTO {
	return dto.PricingSettingsDTO{
		BaseFramePrice:        cfg.BaseFramePrice.String(),
		MusicPrice:            cfg.MusicPrice.String(),
		LipsyncPricePer30s:    cfg.LipsyncPricePer30s.String(),
		Revisions4Price:       cfg.Revisions4Price.String(),
		Revisions8Price:       cfg.Revisions8Price.String(),
		ScenarioPricePerMin:   cfg.ScenarioPricePerMin.String(),
		Deadline20Multiplier:  cfg.Deadline20Multiplier.String(),
		Deadline10Multiplier:  cfg.Deadline10Multiplier.String(),
		NDAPartialMultiplier:  cfg.NDAPartialMultiplier.String(),
		NDAFullMultiplier:     cfg.NDAFullMultiplier.String(),
		VolumeDiscountPercent: cfg.VolumeDiscountPercent.String(),
		HidePricing:           hide,
	}
}

// DTOToConfig parses decimal strings from an admin request
func DTOToConfig(d dto.PricingSettingsDTO) (pricing.Config, error) {
	var cfg pricing.Config
	fields := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{d.BaseFramePrice, &cfg.BaseFramePrice},
		{d.MusicPrice, &cfg.MusicPrice},
		{d.LipsyncPricePer30s, &cfg.LipsyncPricePer30s},
		{d.Revisions4Price, &cfg.Revisions4Price},
		{d.Revisions8Price, &cfg.Revisions8Price},
		{d.ScenarioPricePerMin, &cfg.ScenarioPricePerMin},
		{d.Deadline20Multiplier, &cfg.Deadline20Multiplier},
		{d.Deadline10Multiplier, &cfg.Deadline10Multiplier},
		{d.NDAPartialMultiplier, &cfg.NDAPartialMultiplier},
		{d.NDAFullMultiplier, &cfg.NDAFullMultiplier},
		{d.VolumeDiscountPercent, &cfg.VolumeDiscountPercent},
	}
	for _, f := range fields {
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return pricing.Config{}, err
		}
		*f.dst = v
	}
	return cfg, nil
}
