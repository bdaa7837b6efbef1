package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/artemmak/showreel/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var projectUpsertColumns = []string{
	"title", "subtitle", "thumbnail", "video_preview", "tags", "year", "duration",
	"ai_tools", "content_blocks", "sort_order", "is_published", "updated_at",
}

// ProjectRepositoryImpl implements ProjectRepository
type ProjectRepositoryImpl struct {
	*BaseRepository[models.Project, models.ProjectFilter]
}

// NewProjectRepository creates a new portfolio project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Project, models.ProjectFilter](db),
	}
}

// BySlug retrieves a project by its slug.
func (r *ProjectRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.Project, error) {
	db := r.getDB(ctx)

	var row models.Project
	if err := db.Where("slug = ?", slug).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project %q: %w", slug, err)
	}
	return &row, nil
}

// Upsert inserts the project or replaces every editable column of the one with the same slug.
func (r *ProjectRepositoryImpl) Upsert(ctx context.Context, project *models.Project) error {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(projectUpsertColumns),
	}).Create(project).Error
	if err != nil {
		err = fmt.Errorf("failed to upsert project %q: %w", project.Slug, err)
	}
	return finish(db, owned, err)
}

// DeleteBySlug removes a project.
func (r *ProjectRepositoryImpl) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}

	res := db.Where("slug = ?", slug).Delete(&models.Project{})
	if res.Error != nil {
		err = fmt.Errorf("failed to delete project %q: %w", slug, res.Error)
	}
	if err = finish(db, owned, err); err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func (r *ProjectRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProjectFilter) *gorm.DB {
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}
	if filter.Tag != nil {
		tag, _ := json.Marshal([]string{*filter.Tag})
		query = query.Where("tags @> ?::jsonb", string(tag))
	}
	return query
}

// ByFilter retrieves projects based on filter criteria.
func (r *ProjectRepositoryImpl) ByFilter(ctx context.Context, filter models.ProjectFilter, orderBy string, limit, offset int) ([]*models.Project, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Project{}), filter)

	if orderBy == "" {
		orderBy = "sort_order ASC, id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Project
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of projects matching the filter.
func (r *ProjectRepositoryImpl) Count(ctx context.Context, filter models.ProjectFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Project{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any project matches the filter.
func (r *ProjectRepositoryImpl) Exists(ctx context.Context, filter models.ProjectFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
