package repository

import (
	"context"
	"fmt"

	"github.com/artemmak/showreel/models"
	"gorm.io/gorm"
)

// showcaseItem is satisfied by the landing page list models
type showcaseItem interface {
	GetID() uint
}

// ShowcaseRepositoryImpl implements ShowcaseRepository for one landing page list
type ShowcaseRepositoryImpl[T showcaseItem] struct {
	*BaseRepository[T, struct{}]
	orderBy       string
	hasVisibility bool
}

func newShowcaseRepository[T showcaseItem](db *gorm.DB, orderBy string, hasVisibility bool) *ShowcaseRepositoryImpl[T] {
	return &ShowcaseRepositoryImpl[T]{
		BaseRepository: NewBaseRepository[T, struct{}](db),
		orderBy:        orderBy,
		hasVisibility:  hasVisibility,
	}
}

// NewHeroStatRepository creates the hero statistics repository
func NewHeroStatRepository(db *gorm.DB) HeroStatRepository {
	return newShowcaseRepository[models.HeroStat](db, "sort_order ASC, id ASC", true)
}

// NewSocialLinkRepository creates the social links repository
func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return newShowcaseRepository[models.SocialLink](db, "sort_order ASC, id ASC", true)
}

// NewAIToolRepository creates the AI tools repository; tools have no visibility flag
func NewAIToolRepository(db *gorm.DB) AIToolRepository {
	return newShowcaseRepository[models.AITool](db, "category ASC, sort_order ASC, id ASC", false)
}

// List returns entries in display order.
func (r *ShowcaseRepositoryImpl[T]) List(ctx context.Context, visibleOnly bool) ([]*T, error) {
	query := r.getDB(ctx).Model(new(T))
	if visibleOnly && r.hasVisibility {
		query = query.Where("is_visible = ?", true)
	}

	var rows []*T
	if err := query.Order(r.orderBy).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", *new(T), err)
	}
	return rows, nil
}

// Upsert inserts a new entry or overwrites every column of an existing one.
func (r *ShowcaseRepositoryImpl[T]) Upsert(ctx context.Context, entity *T) error {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	id := (*entity).GetID()
	if id == 0 {
		if err = db.Create(entity).Error; err != nil {
			err = fmt.Errorf("failed to create %T: %w", *entity, err)
		}
		return finish(db, owned, err)
	}

	res := db.Model(entity).Select("*").Omit("id", "created_at").Updates(entity)
	switch {
	case res.Error != nil:
		err = fmt.Errorf("failed to update %T %d: %w", *entity, id, res.Error)
	case res.RowsAffected == 0:
		err = fmt.Errorf("%T %d: %w", *entity, id, gorm.ErrRecordNotFound)
	}
	return finish(db, owned, err)
}

// Delete removes an entry and reports whether it existed.
func (r *ShowcaseRepositoryImpl[T]) Delete(ctx context.Context, id uint) (bool, error) {
	db, owned, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}

	res := db.Delete(new(T), id)
	if res.Error != nil {
		err = fmt.Errorf("failed to delete %T %d: %w", *new(T), id, res.Error)
	}
	if err = finish(db, owned, err); err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
