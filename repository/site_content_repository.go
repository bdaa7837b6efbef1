package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/artemmak/showreel/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteContentRepositoryImpl implements SiteContentRepository
type SiteContentRepositoryImpl struct {
	*BaseRepository[models.SiteContent, models.SiteContentFilter]
}

// NewSiteContentRepository creates a new site content repository
func NewSiteContentRepository(db *gorm.DB) SiteContentRepository {
	return &SiteContentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SiteContent, models.SiteContentFilter](db),
	}
}

// ByKey returns the content entry for key, or nil when it does not exist.
func (r *SiteContentRepositoryImpl) ByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	db := r.getDB(ctx)

	var row models.SiteContent
	if err := db.Where("id = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find site content %q: %w", key, err)
	}
	return &row, nil
}

// List returns content entries ordered by key.
func (r *SiteContentRepositoryImpl) List(ctx context.Context, filter models.SiteContentFilter) ([]*models.SiteContent, error) {
	query := r.getDB(ctx).Model(&models.SiteContent{})
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}

	var rows []*models.SiteContent
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list site content: %w", err)
	}
	return rows, nil
}

// Upsert inserts the entry or overwrites value and description of an existing key.
func (r *SiteContentRepositoryImpl) Upsert(ctx context.Context, content *models.SiteContent) error {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(content).Error
	if err != nil {
		err = fmt.Errorf("failed to upsert site content %q: %w", content.ID, err)
	}
	return finish(db, owned, err)
}
