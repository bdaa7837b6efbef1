package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(duration int) Request {
	return Request{
		DurationSeconds: duration,
		Pace:            PaceStandard,
		Revisions:       Revisions2,
		NDA:             NDANone,
		Rush:            Rush30,
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		pace     Pace
		expected int
	}{
		{"zero duration", 0, PaceStandard, 0},
		{"partial frame rounds up", 61, PaceStandard, 16},
		{"exact multiple", 60, PaceStandard, 15},
		{"one second standard", 1, PaceStandard, 1},
		{"dynamic", 90, PaceDynamic, 45},
		{"dynamic odd", 91, PaceDynamic, 46},
		{"ultra doubles seconds", 3, PaceUltra, 6},
		{"ultra ten minutes", 600, PaceUltra, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FrameCount(tt.duration, tt.pace))
		})
	}
}

func TestVolumeDiscountPercent(t *testing.T) {
	tests := []struct {
		duration int
		expected int
	}{
		{0, 0},
		{119, 0},
		{120, 10},
		{299, 10},
		{300, 15},
		{599, 15},
		{600, 20},
		{900, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, VolumeDiscountPercent(tt.duration), "duration %d", tt.duration)
	}
}

func TestCompute_EndToEndScenario(t *testing.T) {
	cfg := DefaultConfig()
	req := baseRequest(90)
	req.Pace = PaceDynamic
	req.HasScenario = true

	res := Compute(req, cfg)

	assert.Equal(t, 45, res.FrameCount)
	assert.True(t, res.Breakdown.BaseCost.Equal(decimal.NewFromInt(135000)))
	assert.True(t, res.Breakdown.ScenarioCost.Equal(decimal.NewFromInt(40000)))
	assert.True(t, res.Breakdown.AudioCost.IsZero())
	assert.True(t, res.Breakdown.RevisionCost.IsZero())
	assert.True(t, res.Breakdown.Subtotal.Equal(decimal.NewFromInt(175000)))
	assert.Equal(t, int64(175000), res.TotalBeforeDiscount)
	assert.Equal(t, 0, res.DiscountPercent)
	assert.Equal(t, int64(175000), res.DiscountedPrice)
	assert.False(t, res.HasDiscount)
	assert.Equal(t, int64(175000), res.FinalPrice())
}

func TestCompute_MultiplierComposition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Revisions4Price = decimal.NewFromInt(10000)

	req := baseRequest(0)
	req.Revisions = Revisions4
	req.NDA = NDAPartial
	req.Rush = Rush10

	res := Compute(req, cfg)

	require.True(t, res.Breakdown.Subtotal.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, int64(39000), res.TotalBeforeDiscount)

	subtotal := decimal.NewFromInt(10000)
	nda := decimal.RequireFromString("1.3")
	rush := decimal.NewFromInt(3)
	assert.Equal(t, subtotal.Mul(nda).Mul(rush).Round(0).IntPart(), subtotal.Mul(rush).Mul(nda).Round(0).IntPart())
}

func TestCompute_MultipliersAreNotAdditive(t *testing.T) {
	cfg := DefaultConfig()
	req := baseRequest(4) // one standard frame, subtotal 3000
	req.NDA = NDAFull
	req.Rush = Rush20

	res := Compute(req, cfg)

	assert.Equal(t, int64(9000), res.TotalBeforeDiscount) // 3000 * 1.5 * 2
}

func TestCompute_ZeroDurationAddOns(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("music still billed", func(t *testing.T) {
		req := baseRequest(0)
		req.HasMusic = true

		res := Compute(req, cfg)

		assert.Equal(t, 0, res.FrameCount)
		assert.True(t, res.Breakdown.BaseCost.IsZero())
		assert.Equal(t, cfg.MusicPrice.IntPart(), res.TotalBeforeDiscount)
	})

	t.Run("duration based add-ons are zero", func(t *testing.T) {
		req := baseRequest(0)
		req.HasScenario = true
		req.HasLipsync = true

		res := Compute(req, cfg)

		assert.Equal(t, int64(0), res.TotalBeforeDiscount)
		assert.False(t, res.HasDiscount)
	})
}

func TestCompute_AudioAndScenarioBlocks(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name         string
		duration     int
		scenario     bool
		music        bool
		lipsync      bool
		wantScenario int64
		wantAudio    int64
	}{
		{"lipsync one block", 30, false, false, true, 0, 5000},
		{"lipsync started block", 31, false, false, true, 0, 10000},
		{"music and lipsync add up", 45, false, true, true, 0, 20000},
		{"scenario started minute", 61, true, false, false, 40000, 0},
		{"scenario exact minute", 60, true, false, false, 20000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(tt.duration)
			req.HasScenario = tt.scenario
			req.HasMusic = tt.music
			req.HasLipsync = tt.lipsync

			res := Compute(req, cfg)

			assert.Equal(t, tt.wantScenario, res.Breakdown.ScenarioCost.IntPart())
			assert.Equal(t, tt.wantAudio, res.Breakdown.AudioCost.IntPart())
		})
	}
}

func TestCompute_RevisionTiers(t *testing.T) {
	cfg := DefaultConfig()
	for tier, want := range map[RevisionsTier]int64{Revisions2: 0, Revisions4: 20000, Revisions8: 50000} {
		req := baseRequest(0)
		req.Revisions = tier
		assert.Equal(t, want, Compute(req, cfg).TotalBeforeDiscount, "tier %d", tier)
	}
}

func TestCompute_Rounding(t *testing.T) {
	t.Run("total rounds half up", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseFramePrice = decimal.NewFromInt(1001)
		req := baseRequest(4)
		req.NDA = NDAFull

		res := Compute(req, cfg)

		assert.Equal(t, int64(1502), res.TotalBeforeDiscount) // 1501.5
	})

	t.Run("discounted price rounds half up", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseFramePrice = decimal.NewFromInt(1)
		req := baseRequest(300) // 75 frames

		res := Compute(req, cfg)

		assert.Equal(t, int64(75), res.TotalBeforeDiscount)
		assert.Equal(t, 15, res.DiscountPercent)
		assert.Equal(t, int64(64), res.DiscountedPrice) // 63.75
	})
}

func TestCompute_DiscountBoundary(t *testing.T) {
	cfg := DefaultConfig()

	below := Compute(baseRequest(119), cfg)
	assert.Equal(t, 0, below.DiscountPercent)
	assert.False(t, below.HasDiscount)
	assert.Equal(t, below.TotalBeforeDiscount, below.DiscountedPrice)

	at := Compute(baseRequest(120), cfg)
	assert.Equal(t, 10, at.DiscountPercent)
	assert.True(t, at.HasDiscount)
	assert.Equal(t, int64(90000), at.TotalBeforeDiscount)
	assert.Equal(t, int64(81000), at.DiscountedPrice)
	assert.Equal(t, int64(81000), at.FinalPrice())
}

func TestCompute_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	req := Request{
		DurationSeconds: 347,
		Pace:            PaceUltra,
		HasScenario:     true,
		HasMusic:        true,
		HasLipsync:      true,
		Revisions:       Revisions8,
		NDA:             NDAPartial,
		Rush:            Rush20,
	}

	first := Compute(req, cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(req, cfg))
	}
}

func TestCompute_Monotonic(t *testing.T) {
	cfg := DefaultConfig()
	for _, pace := range Paces() {
		prev := Compute(Request{Pace: pace, Revisions: Revisions2, NDA: NDANone, Rush: Rush30, HasScenario: true, HasLipsync: true}, cfg)
		for d := 1; d <= 700; d++ {
			req := Request{DurationSeconds: d, Pace: pace, Revisions: Revisions2, NDA: NDANone, Rush: Rush30, HasScenario: true, HasLipsync: true}
			cur := Compute(req, cfg)
			require.GreaterOrEqual(t, cur.FrameCount, prev.FrameCount, "pace %s duration %d", pace, d)
			require.True(t, cur.Breakdown.BaseCost.GreaterThanOrEqual(prev.Breakdown.BaseCost), "pace %s duration %d", pace, d)
			require.GreaterOrEqual(t, cur.TotalBeforeDiscount, prev.TotalBeforeDiscount, "pace %s duration %d", pace, d)
			prev = cur
		}
	}
}

func TestCompute_IgnoresStoredVolumeDiscount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VolumeDiscountPercent = decimal.NewFromInt(50)

	res := Compute(baseRequest(120), cfg)

	assert.Equal(t, 10, res.DiscountPercent)
}

func TestCompute_PanicsOnContractViolation(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown pace", func(r *Request) { r.Pace = "turbo" }},
		{"empty pace", func(r *Request) { r.Pace = "" }},
		{"unknown revisions", func(r *Request) { r.Revisions = 3 }},
		{"unknown nda", func(r *Request) { r.NDA = "secret" }},
		{"unknown rush", func(r *Request) { r.Rush = 5 }},
		{"negative duration", func(r *Request) { r.DurationSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(60)
			tt.mutate(&req)
			assert.Panics(t, func() { Compute(req, cfg) })
		})
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MusicPrice = decimal.NewFromInt(-1)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.NDAFullMultiplier = decimal.RequireFromString("0.9")
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.VolumeDiscountPercent = decimal.NewFromInt(101)
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateColumnLimits(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"trailing zeros are fine", func(c *Config) { c.NDAFullMultiplier = decimal.RequireFromString("1.500000") }, ""},
		{"three decimal multiplier", func(c *Config) { c.NDAPartialMultiplier = decimal.RequireFromString("1.255") }, ""},
		{"multiplier too precise", func(c *Config) { c.NDAPartialMultiplier = decimal.RequireFromString("1.23456") }, "nda_partial_multiplier must have at most 3 decimal places"},
		{"multiplier too large", func(c *Config) { c.Deadline10Multiplier = decimal.NewFromInt(1000) }, "deadline_10_multiplier must be less than 1000"},
		{"largest multiplier", func(c *Config) { c.Deadline10Multiplier = decimal.RequireFromString("999.999") }, ""},
		{"price with kopecks", func(c *Config) { c.MusicPrice = decimal.RequireFromString("10000.50") }, ""},
		{"price too precise", func(c *Config) { c.MusicPrice = decimal.RequireFromString("10000.505") }, "music_price must have at most 2 decimal places"},
		{"price too large", func(c *Config) { c.BaseFramePrice = decimal.New(1, 10) }, "base_frame_price must be less than 10000000000"},
		{"percent too precise", func(c *Config) { c.VolumeDiscountPercent = decimal.RequireFromString("10.125") }, "volume_discount_percent must have at most 2 decimal places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestParseTiers(t *testing.T) {
	p, err := ParsePace("ultra")
	require.NoError(t, err)
	assert.Equal(t, PaceUltra, p)
	assert.Equal(t, 0.5, p.SecondsPerFrame())

	_, err = ParsePace("slow")
	assert.Error(t, err)

	r, err := ParseRevisionsTier("8")
	require.NoError(t, err)
	assert.Equal(t, Revisions8, r)
	_, err = ParseRevisionsTier("6")
	assert.Error(t, err)

	n, err := ParseNDATier("partial")
	require.NoError(t, err)
	assert.Equal(t, NDAPartial, n)
	_, err = ParseNDATier("half")
	assert.Error(t, err)

	rush, err := ParseRushTier("10")
	require.NoError(t, err)
	assert.Equal(t, Rush10, rush)
	_, err = ParseRushTier("abc")
	assert.Error(t, err)
}
