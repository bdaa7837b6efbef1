package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/artemmak/showreel/models"
	"gorm.io/gorm"
)

// PricingSettingsRepositoryImpl implements PricingSettingsRepository
type PricingSettingsRepositoryImpl struct {
	*BaseRepository[models.PricingSettings, models.PricingSettingsFilter]
}

// NewPricingSettingsRepository creates a new repository for pricing settings
func NewPricingSettingsRepository(db *gorm.DB) PricingSettingsRepository {
	return &PricingSettingsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingSettings, models.PricingSettingsFilter](db),
	}
}

// Latest returns the most recently inserted price list.
func (r *PricingSettingsRepositoryImpl) Latest(ctx context.Context) (*models.PricingSettings, error) {
	db := r.getDB(ctx)

	var row models.PricingSettings
	err := db.Order("created_at DESC").Order("id DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest pricing settings: %w", err)
	}
	return &row, nil
}

func (r *PricingSettingsRepositoryImpl) applyFilter(db *gorm.DB, filter models.PricingSettingsFilter) *gorm.DB {
	if filter.HidePricing != nil {
		db = db.Where("hide_pricing = ?", *filter.HidePricing)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	return db
}

// ByFilter retrieves pricing settings revisions based on filter criteria.
func (r *PricingSettingsRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingSettingsFilter, orderBy string, limit, offset int) ([]*models.PricingSettings, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingSettings{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PricingSettings
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of revisions matching the filter.
func (r *PricingSettingsRepositoryImpl) Count(ctx context.Context, filter models.PricingSettingsFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingSettings{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any revision matching the filter exists.
func (r *PricingSettingsRepositoryImpl) Exists(ctx context.Context, filter models.PricingSettingsFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
