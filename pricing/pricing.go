// Package pricing implements the project cost calculator used by the public
// site. It is a pure function of a request and a configuration snapshot.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config holds every tunable used by Compute. Callers load it fresh for each
// estimate; the engine never caches or mutates it.
type Config struct {
	BaseFramePrice       decimal.Decimal `json:"base_frame_price" toml:"base_frame_price"`
	MusicPrice           decimal.Decimal `json:"music_price" toml:"music_price"`
	LipsyncPricePer30s   decimal.Decimal `json:"lipsync_price_per_30s" toml:"lipsync_price_per_30s"`
	Revisions4Price      decimal.Decimal `json:"revisions_4_price" toml:"revisions_4_price"`
	Revisions8Price      decimal.Decimal `json:"revisions_8_price" toml:"revisions_8_price"`
	ScenarioPricePerMin  decimal.Decimal `json:"scenario_price_per_min" toml:"scenario_price_per_min"`
	Deadline20Multiplier decimal.Decimal `json:"deadline_20_multiplier" toml:"deadline_20_multiplier"`
	Deadline10Multiplier decimal.Decimal `json:"deadline_10_multiplier" toml:"deadline_10_multiplier"`
	NDAPartialMultiplier decimal.Decimal `json:"nda_partial_multiplier" toml:"nda_partial_multiplier"`
	NDAFullMultiplier    decimal.Decimal `json:"nda_full_multiplier" toml:"nda_full_multiplier"`

	// VolumeDiscountPercent is stored and editable but Compute applies the
	// fixed duration schedule in DiscountTiers instead.
	VolumeDiscountPercent decimal.Decimal `json:"volume_discount_percent" toml:"volume_discount_percent"`
}

// DefaultConfig returns the launch price list.
func DefaultConfig() Config {
	return Config{
		BaseFramePrice:        decimal.NewFromInt(3000),
		MusicPrice:            decimal.NewFromInt(10000),
		LipsyncPricePer30s:    decimal.NewFromInt(5000),
		Revisions4Price:       decimal.NewFromInt(20000),
		Revisions8Price:       decimal.NewFromInt(50000),
		ScenarioPricePerMin:   decimal.NewFromInt(20000),
		Deadline20Multiplier:  decimal.NewFromInt(2),
		Deadline10Multiplier:  decimal.NewFromInt(3),
		NDAPartialMultiplier:  decimal.RequireFromString("1.3"),
		NDAFullMultiplier:     decimal.RequireFromString("1.5"),
		VolumeDiscountPercent: decimal.NewFromInt(10),
	}
}

// Storage limits of the price list columns.
var (
	maxPrice      = decimal.New(1, 10) // numeric(12,2)
	maxMultiplier = decimal.New(1, 3)  // numeric(6,3)
)

const (
	priceScale      = 2
	multiplierScale = 3
	percentScale    = 2
)

type namedValue struct {
	name  string
	value decimal.Decimal
}

// Validate reports whether the configuration is internally consistent and
// fits the price list columns: prices are non-negative with at most two
// decimals, multipliers are at least 1 with at most three. Compute itself
// trusts its input and does not call this.
func (c Config) Validate() error {
	prices := []namedValue{
		{"base_frame_price", c.BaseFramePrice},
		{"music_price", c.MusicPrice},
		{"lipsync_price_per_30s", c.LipsyncPricePer30s},
		{"revisions_4_price", c.Revisions4Price},
		{"revisions_8_price", c.Revisions8Price},
		{"scenario_price_per_min", c.ScenarioPricePerMin},
	}
	for _, p := range prices {
		if p.value.IsNegative() {
			return fmt.Errorf("%s must not be negative", p.name)
		}
		if p.value.GreaterThanOrEqual(maxPrice) {
			return fmt.Errorf("%s must be less than %s", p.name, maxPrice)
		}
		if !hasScale(p.value, priceScale) {
			return fmt.Errorf("%s must have at most %d decimal places", p.name, priceScale)
		}
	}

	multipliers := []namedValue{
		{"deadline_20_multiplier", c.Deadline20Multiplier},
		{"deadline_10_multiplier", c.Deadline10Multiplier},
		{"nda_partial_multiplier", c.NDAPartialMultiplier},
		{"nda_full_multiplier", c.NDAFullMultiplier},
	}
	for _, m := range multipliers {
		if m.value.LessThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be at least 1", m.name)
		}
		if m.value.GreaterThanOrEqual(maxMultiplier) {
			return fmt.Errorf("%s must be less than %s", m.name, maxMultiplier)
		}
		if !hasScale(m.value, multiplierScale) {
			return fmt.Errorf("%s must have at most %d decimal places", m.name, multiplierScale)
		}
	}

	if c.VolumeDiscountPercent.IsNegative() || c.VolumeDiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("volume_discount_percent must be between 0 and 100")
	}
	if !hasScale(c.VolumeDiscountPercent, percentScale) {
		return fmt.Errorf("volume_discount_percent must have at most %d decimal places", percentScale)
	}
	return nil
}

// hasScale reports whether v survives rounding to places decimals unchanged
func hasScale(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Round(places))
}

// Request is one calculator submission.
type Request struct {
	DurationSeconds int           `json:"duration_seconds"`
	Pace            Pace          `json:"pace"`
	HasScenario     bool          `json:"has_scenario"`
	HasMusic        bool          `json:"has_music"`
	HasLipsync      bool          `json:"has_lipsync"`
	Revisions       RevisionsTier `json:"revisions"`
	NDA             NDATier       `json:"nda"`
	Rush            RushTier      `json:"rush"`
}

// Breakdown itemizes how the total was built.
type Breakdown struct {
	BaseCost       decimal.Decimal `json:"base_cost"`
	ScenarioCost   decimal.Decimal `json:"scenario_cost"`
	AudioCost      decimal.Decimal `json:"audio_cost"`
	RevisionCost   decimal.Decimal `json:"revision_cost"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	NDAMultiplier  decimal.Decimal `json:"nda_multiplier"`
	RushMultiplier decimal.Decimal `json:"rush_multiplier"`
}

// Result is the calculator output. Monetary totals are whole currency units.
type Result struct {
	FrameCount          int       `json:"frame_count"`
	TotalBeforeDiscount int64     `json:"total_before_discount"`
	DiscountPercent     int       `json:"discount_percent"`
	DiscountedPrice     int64     `json:"discounted_price"`
	HasDiscount         bool      `json:"has_discount"`
	Breakdown           Breakdown `json:"breakdown"`
}

// FinalPrice is the amount the client is quoted.
func (r Result) FinalPrice() int64 {
	if r.HasDiscount {
		return r.DiscountedPrice
	}
	return r.TotalBeforeDiscount
}

// Compute prices a request against cfg.
//
// Unit counts (frames, started minutes, started 30-second blocks) are rounded
// up; the two monetary compositions are rounded half up to whole units.
// An unknown tier or a negative duration is a caller bug and panics.
func Compute(req Request, cfg Config) Result {
	if req.DurationSeconds < 0 {
		panic(fmt.Sprintf("pricing: negative duration %d", req.DurationSeconds))
	}

	frames := FrameCount(req.DurationSeconds, req.Pace)
	baseCost := cfg.BaseFramePrice.Mul(decimal.NewFromInt(int64(frames)))

	scenarioCost := decimal.Zero
	if req.HasScenario {
		scenarioCost = cfg.ScenarioPricePerMin.Mul(decimal.NewFromInt(int64(ceilDiv(req.DurationSeconds, 60))))
	}

	audioCost := decimal.Zero
	if req.HasMusic {
		audioCost = audioCost.Add(cfg.MusicPrice)
	}
	if req.HasLipsync {
		audioCost = audioCost.Add(cfg.LipsyncPricePer30s.Mul(decimal.NewFromInt(int64(ceilDiv(req.DurationSeconds, 30)))))
	}

	revisionCost := revisionCost(req.Revisions, cfg)
	subtotal := baseCost.Add(scenarioCost).Add(audioCost).Add(revisionCost)

	ndaMult := ndaMultiplier(req.NDA, cfg)
	rushMult := rushMultiplier(req.Rush, cfg)
	total := subtotal.Mul(ndaMult).Mul(rushMult).Round(0)

	pct := VolumeDiscountPercent(req.DurationSeconds)
	discounted := total.Mul(decimal.NewFromInt(int64(100 - pct))).Div(decimal.NewFromInt(100)).Round(0)

	return Result{
		FrameCount:          frames,
		TotalBeforeDiscount: total.IntPart(),
		DiscountPercent:     pct,
		DiscountedPrice:     discounted.IntPart(),
		HasDiscount:         pct > 0,
		Breakdown: Breakdown{
			BaseCost:       baseCost,
			ScenarioCost:   scenarioCost,
			AudioCost:      audioCost,
			RevisionCost:   revisionCost,
			Subtotal:       subtotal,
			NDAMultiplier:  ndaMult,
			RushMultiplier: rushMult,
		},
	}
}

// FrameCount returns ceil(duration / seconds-per-frame) for the pace.
func FrameCount(durationSeconds int, pace Pace) int {
	return ceilDiv(durationSeconds*2, pace.halfSeconds())
}

// DiscountTier is one step of the volume discount schedule.
type DiscountTier struct {
	MinSeconds int `json:"min_seconds"`
	Percent    int `json:"percent"`
}

// DiscountTiers returns the schedule from the highest threshold down.
func DiscountTiers() []DiscountTier {
	return []DiscountTier{
		{MinSeconds: 600, Percent: 20},
		{MinSeconds: 300, Percent: 15},
		{MinSeconds: 120, Percent: 10},
	}
}

// VolumeDiscountPercent maps a duration onto the step schedule. Thresholds
// are inclusive on the lower bound.
func VolumeDiscountPercent(durationSeconds int) int {
	for _, t := range DiscountTiers() {
		if durationSeconds >= t.MinSeconds {
			return t.Percent
		}
	}
	return 0
}

func revisionCost(tier RevisionsTier, cfg Config) decimal.Decimal {
	switch tier {
	case Revisions2:
		return decimal.Zero
	case Revisions4:
		return cfg.Revisions4Price
	case Revisions8:
		return cfg.Revisions8Price
	}
	panic(fmt.Sprintf("pricing: unknown revisions tier %d", int(tier)))
}

func ndaMultiplier(tier NDATier, cfg Config) decimal.Decimal {
	switch tier {
	case NDANone:
		return decimal.NewFromInt(1)
	case NDAPartial:
		return cfg.NDAPartialMultiplier
	case NDAFull:
		return cfg.NDAFullMultiplier
	}
	panic(fmt.Sprintf("pricing: unknown nda tier %q", string(tier)))
}

func rushMultiplier(tier RushTier, cfg Config) decimal.Decimal {
	switch tier {
	case Rush30:
		return decimal.NewFromInt(1)
	case Rush20:
		return cfg.Deadline20Multiplier
	case Rush10:
		return cfg.Deadline10Multiplier
	}
	panic(fmt.Sprintf("pricing: unknown rush tier %d", int(tier)))
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
