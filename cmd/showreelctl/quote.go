package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/services"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/artemmak/showreel/config"
	"github.com/artemmak/showreel/pricing"
	"github.com/artemmak/showreel/repository"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// quoter prices an estimate against a stored price list
type quoter interface {
	Quote(ctx context.Context, req *dto.EstimateRequest) (*pricing.Result, error)
}

type quoteOptions struct {
	configPath string
	fromDB     bool
	duration   int
	pace       string
	scenario   bool
	music      bool
	lipsync    bool
	revisions  string
	nda        string
	deadline   string
	asJSON     bool
}

func newQuoteCmd() *cobra.Command {
	var opts quoteOptions

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a project with a local or stored price list",
		Long: "Price a project. Without --config the built-in price list is used; " +
			"--from-db prices against the active price list in the configured database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.fromDB {
				return runQuote(cmd.Context(), cmd.OutOrStdout(), opts, nil)
			}
			if opts.configPath != "" {
				return errors.New("--config and --from-db are mutually exclusive")
			}
			q, closeDB, err := openStoredPricing()
			if err != nil {
				return err
			}
			defer closeDB()
			return runQuote(cmd.Context(), cmd.OutOrStdout(), opts, q)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML price list (see pricing-init)")
	f.BoolVar(&opts.fromDB, "from-db", false, "Use the active price list stored in the database")
	f.IntVarP(&opts.duration, "duration", "d", 60, "Video duration in seconds")
	f.StringVar(&opts.pace, "pace", string(pricing.PaceStandard), "Editing pace: standard, dynamic, ultra")
	f.BoolVar(&opts.scenario, "scenario", false, "Include scenario writing")
	f.BoolVar(&opts.music, "music", false, "Include AI music")
	f.BoolVar(&opts.lipsync, "lipsync", false, "Include lip sync")
	f.StringVar(&opts.revisions, "revisions", "2", "Revision rounds: 2, 4, 8")
	f.StringVar(&opts.nda, "nda", string(pricing.NDANone), "NDA level: none, partial, full")
	f.StringVar(&opts.deadline, "deadline", "30", "Deadline in days: 30, 20, 10")
	f.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (o quoteOptions) request() (pricing.Request, error) {
	if o.duration < 0 {
		return pricing.Request{}, fmt.Errorf("duration must not be negative")
	}
	pace, err := pricing.ParsePace(o.pace)
	if err != nil {
		return pricing.Request{}, err
	}
	revisions, err := pricing.ParseRevisionsTier(o.revisions)
	if err != nil {
		return pricing.Request{}, err
	}
	nda, err := pricing.ParseNDATier(o.nda)
	if err != nil {
		return pricing.Request{}, err
	}
	rush, err := pricing.ParseRushTier(o.deadline)
	if err != nil {
		return pricing.Request{}, err
	}
	return pricing.Request{
		DurationSeconds: o.duration,
		Pace:            pace,
		HasScenario:     o.scenario,
		HasMusic:        o.music,
		HasLipsync:      o.lipsync,
		Revisions:       revisions,
		NDA:             nda,
		Rush:            rush,
	}, nil
}

func estimateRequest(req pricing.Request) *dto.EstimateRequest {
	return &dto.EstimateRequest{
		DurationSeconds: req.DurationSeconds,
		Pace:            string(req.Pace),
		HasScenario:     req.HasScenario,
		HasMusic:        req.HasMusic,
		HasLipsync:      req.HasLipsync,
		Revisions:       int(req.Revisions),
		NDA:             string(req.NDA),
		Deadline:        int(req.Rush),
	}
}

// openStoredPricing connects to the configured database and returns the pricing flow over it
func openStoredPricing() (quoter, func(), error) {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	flow := businessflow.NewPricingFlow(repository.NewPricingSettingsRepository(db))
	return flow, func() { _ = sqlDB.Close() }, nil
}

// runQuote prices opts locally, or through q when it is set
func runQuote(ctx context.Context, w io.Writer, opts quoteOptions, q quoter) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	var res pricing.Result
	if q != nil {
		stored, err := q.Quote(ctx, estimateRequest(req))
		if err != nil {
			return err
		}
		res = *stored
	} else {
		cfg := pricing.DefaultConfig()
		if opts.configPath != "" {
			loaded, err := config.LoadPricingFile(opts.configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		res = pricing.Compute(req, cfg)
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Request    pricing.Request `json:"request"`
			Result     pricing.Result  `json:"result"`
			FinalPrice int64           `json:"final_price"`
		}{req, res, res.FinalPrice()})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s\t%s\n", k, v) }
	row("Duration", services.FormatDuration(req.DurationSeconds))
	row("Frames", strconv.Itoa(res.FrameCount))
	row("Base", res.Breakdown.BaseCost.StringFixed(2))
	row("Scenario", res.Breakdown.ScenarioCost.StringFixed(2))
	row("Audio", res.Breakdown.AudioCost.StringFixed(2))
	row("Revisions", res.Breakdown.RevisionCost.StringFixed(2))
	row("Subtotal", res.Breakdown.Subtotal.StringFixed(2))
	row("NDA x", res.Breakdown.NDAMultiplier.String())
	row("Rush x", res.Breakdown.RushMultiplier.String())
	row("Total", services.FormatRubles(res.TotalBeforeDiscount)+" RUB")
	if res.HasDiscount {
		row("Discount", strconv.Itoa(res.DiscountPercent)+"%")
	}
	row("Final", services.FormatRubles(res.FinalPrice())+" RUB")
	return tw.Flush()
}

func newPricingInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pricing-init <path>",
		Short: "Write the built-in price list to a TOML file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WritePricingFile(args[0], pricing.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
