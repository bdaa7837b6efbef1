package repository

import (
	"context"
	"fmt"

	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRequestRepositoryImpl implements ProjectRequestRepository
type ProjectRequestRepositoryImpl struct {
	*BaseRepository[models.ProjectRequest, models.ProjectRequestFilter]
}

// NewProjectRequestRepository creates a new project request repository
func NewProjectRequestRepository(db *gorm.DB) ProjectRequestRepository {
	return &ProjectRequestRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ProjectRequest, models.ProjectRequestFilter](db),
	}
}

// ByUUID retrieves a project request by its public UUID.
func (r *ProjectRequestRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.ProjectRequest, error) {
	rows, err := r.ByFilter(ctx, models.ProjectRequestFilter{UUID: &id}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UpdateStatus sets the status of a project request.
func (r *ProjectRequestRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.ProjectRequestStatus) error {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&models.ProjectRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		})
	if res.Error != nil {
		err = fmt.Errorf("failed to update project request status: %w", res.Error)
	} else if res.RowsAffected == 0 {
		err = fmt.Errorf("project request %d not found", id)
	}
	return finish(db, owned, err)
}

func (r *ProjectRequestRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProjectRequestFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", string(*filter.Source))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves project requests based on filter criteria.
func (r *ProjectRequestRepositoryImpl) ByFilter(ctx context.Context, filter models.ProjectRequestFilter, orderBy string, limit, offset int) ([]*models.ProjectRequest, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ProjectRequest{}), filter)

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

	var rows []*models.ProjectRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of project requests matching the filter.
func (r *ProjectRequestRepositoryImpl) Count(ctx context.Context, filter models.ProjectRequestFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ProjectRequest{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any project request matches the filter.
func (r *ProjectRequestRepositoryImpl) Exists(ctx context.Context, filter models.ProjectRequestFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
