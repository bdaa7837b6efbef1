package testing

import (
	"fmt"
	"math/rand"

	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/utils"
	"github.com/shopspring/decimal"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateContactRequest inserts a contact form request with a random email
func (tf *TestFixtures) CreateContactRequest() (*models.ProjectRequest, error) {
	pr := &models.ProjectRequest{
		Source:             models.ProjectRequestSourceContactForm,
		Name:               "Anna",
		Email:              utils.ToPtr(fmt.Sprintf("anna.%d@example.com", rand.Intn(1_000_000))),
		ProjectDescription: "Music video, about 90 seconds",
		Attachments:        models.StringList{"https://disk.example.com/ref.mp4"},
	}
	if err := tf.DB.DB.Create(pr).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact request: %w", err)
	}
	return pr, nil
}

// CreateCalculatorRequest inserts a calculator request carrying an estimate
func (tf *TestFixtures) CreateCalculatorRequest(budget int64) (*models.ProjectRequest, error) {
	pr := &models.ProjectRequest{
		Source:             models.ProjectRequestSourceCalculator,
		Name:               "Boris",
		Telegram:           utils.ToPtr("@boris"),
		ProjectDescription: "Promo clip",
		DurationSeconds:    utils.ToPtr(90),
		Pace:               utils.ToPtr("dynamic"),
		AudioOptions:       models.StringList{"music"},
		Revisions:          utils.ToPtr("2"),
		Deadline:           utils.ToPtr("30"),
		NDA:                utils.ToPtr("none"),
		BudgetEstimate:     &budget,
	}
	if err := tf.DB.DB.Create(pr).Error; err != nil {
		return nil, fmt.Errorf("failed to create calculator request: %w", err)
	}
	return pr, nil
}

// CreatePricingSettings inserts a price list revision with the given frame price
func (tf *TestFixtures) CreatePricingSettings(framePrice int64, hide bool) (*models.PricingSettings, error) {
	ps := &models.PricingSettings{
		BaseFramePrice:        decimal.NewFromInt(framePrice),
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
		HidePricing:           hide,
	}
	if err := tf.DB.DB.Create(ps).Error; err != nil {
		return nil, fmt.Errorf("failed to create pricing settings: %w", err)
	}
	return ps, nil
}
