package businessflow

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/repository"
	"github.com/redis/go-redis/v9"
)

var siteContentKeyPattern = regexp.MustCompile(`^[a-z0-9_]{1,100}$`)

// SiteContentFlow serves editable site content with a Redis read-through cache
type SiteContentFlow interface {
	GetSiteContent(ctx context.Context, key string) (*dto.GetSiteContentResponse, error)
	ListSiteContent(ctx context.Context) (*dto.ListSiteContentResponse, error)
	AdminUpsertSiteContent(ctx context.Context, req *dto.AdminUpsertSiteContentRequest, adminID uint) (*dto.AdminUpsertSiteContentResponse, error)
}

type SiteContentFlowImpl struct {
	contentRepo repository.SiteContentRepository
	cache       contentCache
}

// NewSiteContentFlow creates the flow; a nil redis client disables caching
func NewSiteContentFlow(contentRepo repository.SiteContentRepository, rc *redis.Client, prefix string, ttl time.Duration) SiteContentFlow {
	return &SiteContentFlowImpl{
		contentRepo: contentRepo,
		cache:       newContentCache(rc, prefix, "site_content", ttl),
	}
}

func (f *SiteContentFlowImpl) GetSiteContent(ctx context.Context, key string) (*dto.GetSiteContentResponse, error) {
	key = strings.TrimSpace(key)
	if !siteContentKeyPattern.MatchString(key) {
		return nil, NewBusinessError("SITE_CONTENT_KEY_INVALID", "Content key must be lowercase letters, digits or underscores", ErrSiteContentKeyInvalid)
	}

	cacheKey := f.cache.key(key)
	var item dto.SiteContentItem
	if f.cache.get(ctx, cacheKey, &item) {
		return &dto.GetSiteContentResponse{Message: "Site content retrieved successfully", Item: item}, nil
	}

	row, err := f.contentRepo.ByKey(ctx, key)
	if err != nil {
		return nil, NewBusinessError("SITE_CONTENT_FETCH_FAILED", "Failed to fetch site content", err)
	}
	if row == nil {
		return nil, NewBusinessError("SITE_CONTENT_NOT_FOUND", "Site content not found", ErrSiteContentNotFound)
	}

	item = ToSiteContentItem(*row)
	f.cache.set(ctx, cacheKey, item)

	return &dto.GetSiteContentResponse{Message: "Site content retrieved successfully", Item: item}, nil
}

func (f *SiteContentFlowImpl) ListSiteContent(ctx context.Context) (*dto.ListSiteContentResponse, error) {
	cacheKey := f.cache.key("list")
	var items []dto.SiteContentItem
	if f.cache.get(ctx, cacheKey, &items) {
		return &dto.ListSiteContentResponse{Message: "Site content retrieved successfully", Items: items}, nil
	}

	rows, err := f.contentRepo.List(ctx, models.SiteContentFilter{})
	if err != nil {
		return nil, NewBusinessError("SITE_CONTENT_LIST_FAILED", "Failed to list site content", err)
	}

	items = make([]dto.SiteContentItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToSiteContentItem(*r))
	}
	f.cache.set(ctx, cacheKey, items)

	return &dto.ListSiteContentResponse{Message: "Site content retrieved successfully", Items: items}, nil
}

// AdminUpsertSiteContent saves a value and drops the cached copies
func (f *SiteContentFlowImpl) AdminUpsertSiteContent(ctx context.Context, req *dto.AdminUpsertSiteContentRequest, adminID uint) (*dto.AdminUpsertSiteContentResponse, error) {
	if req == nil {
		return nil, NewBusinessError("SITE_CONTENT_KEY_INVALID", "Content key is required", ErrSiteContentKeyInvalid)
	}
	key := strings.TrimSpace(req.Key)
	if !siteContentKeyPattern.MatchString(key) {
		return nil, NewBusinessError("SITE_CONTENT_KEY_INVALID", "Content key must be lowercase letters, digits or underscores", ErrSiteContentKeyInvalid)
	}

	value := req.Value
	if key == models.SiteContentAvailabilityStatus {
		value = strings.TrimSpace(value)
		switch value {
		case models.AvailabilityAvailable, models.AvailabilityMedium, models.AvailabilityBusy:
		default:
			return nil, NewBusinessError("AVAILABILITY_INVALID", "Availability must be available, medium or busy", ErrAvailabilityInvalid)
		}
	}

	row := &models.SiteContent{
		ID:          key,
		Value:       value,
		Description: req.Description,
	}
	if err := f.contentRepo.Upsert(ctx, row); err != nil {
		return nil, NewBusinessError("SITE_CONTENT_SAVE_FAILED", "Failed to save site content", err)
	}

	f.cache.del(ctx, f.cache.key(key), f.cache.key("list"))
	logging.L(ctx).Info("site content updated", "admin_id", adminID, "key", key)

	return &dto.AdminUpsertSiteContentResponse{
		Message: "Site content saved successfully",
		Item:    ToSiteContentItem(*row),
	}, nil
}
