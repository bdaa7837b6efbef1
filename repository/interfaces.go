// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/artemmak/showreel/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// PricingSettingsRepository defines operations for calculator price lists
type PricingSettingsRepository interface {
	Repository[models.PricingSettings, models.PricingSettingsFilter]
	// Latest returns the active price list (last inserted wins), or nil when the table is empty
	Latest(ctx context.Context) (*models.PricingSettings, error)
}

// ProjectRequestRepository defines operations for inbound project requests
type ProjectRequestRepository interface {
	Repository[models.ProjectRequest, models.ProjectRequestFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.ProjectRequest, error)
	UpdateStatus(ctx context.Context, id uint, status models.ProjectRequestStatus) error
}

// SiteContentRepository defines operations for editable site content
type SiteContentRepository interface {
	ByKey(ctx context.Context, key string) (*models.SiteContent, error)
	List(ctx context.Context, filter models.SiteContentFilter) ([]*models.SiteContent, error)
	Upsert(ctx context.Context, content *models.SiteContent) error
}

// ProjectRepository defines operations for portfolio projects
type ProjectRepository interface {
	Repository[models.Project, models.ProjectFilter]
	// BySlug returns the project with slug, or nil when it does not exist
	BySlug(ctx context.Context, slug string) (*models.Project, error)
	// Upsert inserts the project or overwrites the one with the same slug
	Upsert(ctx context.Context, project *models.Project) error
	// DeleteBySlug reports whether a project was removed
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

// ShowcaseRepository defines operations for the small ordered lists on the landing page
type ShowcaseRepository[T any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	// List returns every entry in display order; visibleOnly drops hidden entries
	List(ctx context.Context, visibleOnly bool) ([]*T, error)
	// Upsert inserts an entry without an id and overwrites the entry with its id otherwise
	Upsert(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type (
	HeroStatRepository   = ShowcaseRepository[models.HeroStat]
	SocialLinkRepository = ShowcaseRepository[models.SocialLink]
	AIToolRepository     = ShowcaseRepository[models.AITool]
)
