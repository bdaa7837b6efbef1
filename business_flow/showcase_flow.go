package businessflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/logging"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ShowcaseKind names one of the landing page lists
type ShowcaseKind string

const (
	ShowcaseHeroStats   ShowcaseKind = "hero-stats"
	ShowcaseSocialLinks ShowcaseKind = "social-links"
	ShowcaseAITools     ShowcaseKind = "ai-tools"
)

var socialLinkSchemes = []string{"https://", "http://", "mailto:", "tel:"}

// ShowcaseFlow serves the hero statistics, social links and AI tool credits
type ShowcaseFlow interface {
	GetShowcase(ctx context.Context, query *dto.ShowcaseQuery) (*dto.ShowcaseResponse, error)
	AdminGetShowcase(ctx context.Context) (*dto.ShowcaseResponse, error)
	AdminUpsertHeroStat(ctx context.Context, req *dto.AdminUpsertHeroStatRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error)
	AdminUpsertSocialLink(ctx context.Context, req *dto.AdminUpsertSocialLinkRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error)
	AdminUpsertAITool(ctx context.Context, req *dto.AdminUpsertAIToolRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error)
	AdminDeleteShowcaseItem(ctx context.Context, kind ShowcaseKind, id uint, adminID uint) (*dto.AdminDeleteResponse, error)
}

type ShowcaseFlowImpl struct {
	heroStatRepo   repository.HeroStatRepository
	socialLinkRepo repository.SocialLinkRepository
	aiToolRepo     repository.AIToolRepository
	cache          contentCache
}

// NewShowcaseFlow creates the flow; a nil redis client disables caching
func NewShowcaseFlow(
	heroStatRepo repository.HeroStatRepository,
	socialLinkRepo repository.SocialLinkRepository,
	aiToolRepo repository.AIToolRepository,
	rc *redis.Client,
	prefix string,
	ttl time.Duration,
) ShowcaseFlow {
	return &ShowcaseFlowImpl{
		heroStatRepo:   heroStatRepo,
		socialLinkRepo: socialLinkRepo,
		aiToolRepo:     aiToolRepo,
		cache:          newContentCache(rc, prefix, "showcase", ttl),
	}
}

// GetShowcase returns visible entries. With a location only links rendered there are kept.
func (f *ShowcaseFlowImpl) GetShowcase(ctx context.Context, query *dto.ShowcaseQuery) (*dto.ShowcaseResponse, error) {
	location := models.SocialLinkBoth
	if query != nil && strings.TrimSpace(query.Location) != "" {
		location = models.SocialLinkLocation(strings.TrimSpace(query.Location))
		if !location.Valid() {
			return nil, NewBusinessError("INVALID_LOCATION", "Location must be header, footer or both", ErrInvalidShowcaseItem)
		}
	}

	cacheKey := f.cache.key("public", string(location))
	var resp dto.ShowcaseResponse
	if f.cache.get(ctx, cacheKey, &resp) {
		return &resp, nil
	}

	out, err := f.load(ctx, true, location)
	if err != nil {
		return nil, err
	}
	f.cache.set(ctx, cacheKey, out)
	return out, nil
}

// AdminGetShowcase returns every entry including hidden ones
func (f *ShowcaseFlowImpl) AdminGetShowcase(ctx context.Context) (*dto.ShowcaseResponse, error) {
	return f.load(ctx, false, models.SocialLinkBoth)
}

func (f *ShowcaseFlowImpl) load(ctx context.Context, visibleOnly bool, location models.SocialLinkLocation) (*dto.ShowcaseResponse, error) {
	stats, err := f.heroStatRepo.List(ctx, visibleOnly)
	if err != nil {
		return nil, NewBusinessError("SHOWCASE_FETCH_FAILED", "Failed to fetch hero stats", err)
	}
	links, err := f.socialLinkRepo.List(ctx, visibleOnly)
	if err != nil {
		return nil, NewBusinessError("SHOWCASE_FETCH_FAILED", "Failed to fetch social links", err)
	}
	tools, err := f.aiToolRepo.List(ctx, false)
	if err != nil {
		return nil, NewBusinessError("SHOWCASE_FETCH_FAILED", "Failed to fetch AI tools", err)
	}

	resp := &dto.ShowcaseResponse{
		Message:     "Showcase retrieved successfully",
		HeroStats:   make([]dto.HeroStatDTO, 0, len(stats)),
		SocialLinks: make([]dto.SocialLinkDTO, 0, len(links)),
		VideoTools:  []dto.AIToolDTO{},
		ImageTools:  []dto.AIToolDTO{},
	}
	for _, s := range stats {
		resp.HeroStats = append(resp.HeroStats, ToHeroStatDTO(*s))
	}
	for _, l := range links {
		if l.Location.ShownIn(location) {
			resp.SocialLinks = append(resp.SocialLinks, ToSocialLinkDTO(*l))
		}
	}
	for _, t := range tools {
		switch t.Category {
		case models.AIToolVideo:
			resp.VideoTools = append(resp.VideoTools, ToAIToolDTO(*t))
		case models.AIToolImage:
			resp.ImageTools = append(resp.ImageTools, ToAIToolDTO(*t))
		}
	}
	return resp, nil
}

func (f *ShowcaseFlowImpl) AdminUpsertHeroStat(ctx context.Context, req *dto.AdminUpsertHeroStatRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "Hero stat is required", ErrInvalidShowcaseItem)
	}
	row := &models.HeroStat{
		ID:        req.ID,
		Value:     strings.TrimSpace(req.Value),
		Label:     strings.TrimSpace(req.Label),
		SortOrder: req.SortOrder,
		IsVisible: req.IsVisible,
	}
	if row.Value == "" || row.Label == "" {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "Hero stat needs a value and a label", ErrInvalidShowcaseItem)
	}
	if err := f.upsert(ctx, ShowcaseHeroStats, adminID, row.ID, func() error { return f.heroStatRepo.Upsert(ctx, row) }); err != nil {
		return nil, err
	}
	return &dto.AdminUpsertShowcaseItemResponse{Message: "Hero stat saved successfully", Item: ToHeroStatDTO(*row)}, nil
}

func (f *ShowcaseFlowImpl) AdminUpsertSocialLink(ctx context.Context, req *dto.AdminUpsertSocialLinkRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "Social link is required", ErrInvalidShowcaseItem)
	}
	location := models.SocialLinkLocation(strings.TrimSpace(req.Location))
	if location == "" {
		location = models.SocialLinkBoth
	}
	row := &models.SocialLink{
		ID:        req.ID,
		Name:      strings.TrimSpace(req.Name),
		URL:       strings.TrimSpace(req.URL),
		Icon:      strings.TrimSpace(req.Icon),
		Location:  location,
		SortOrder: req.SortOrder,
		IsVisible: req.IsVisible,
	}
	if row.Name == "" || row.Icon == "" {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "Social link needs a name and an icon", ErrInvalidShowcaseItem)
	}
	if !location.Valid() {
		return nil, NewBusinessError("INVALID_LOCATION", "Location must be header, footer or both", ErrInvalidShowcaseItem)
	}
	if !hasAnyPrefix(row.URL, socialLinkSchemes) {
		return nil, NewBusinessError("INVALID_SOCIAL_LINK_URL", "Link must start with https://, http://, mailto: or tel:", ErrInvalidShowcaseItem)
	}
	if err := f.upsert(ctx, ShowcaseSocialLinks, adminID, row.ID, func() error { return f.socialLinkRepo.Upsert(ctx, row) }); err != nil {
		return nil, err
	}
	return &dto.AdminUpsertShowcaseItemResponse{Message: "Social link saved successfully", Item: ToSocialLinkDTO(*row)}, nil
}

func (f *ShowcaseFlowImpl) AdminUpsertAITool(ctx context.Context, req *dto.AdminUpsertAIToolRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "AI tool is required", ErrInvalidShowcaseItem)
	}
	row := &models.AITool{
		ID:        req.ID,
		Name:      strings.TrimSpace(req.Name),
		Logo:      strings.TrimSpace(req.Logo),
		Category:  models.AIToolCategory(strings.TrimSpace(req.Category)),
		SortOrder: req.SortOrder,
	}
	if row.Name == "" || row.Logo == "" {
		return nil, NewBusinessError("INVALID_SHOWCASE_ITEM", "AI tool needs a name and a logo", ErrInvalidShowcaseItem)
	}
	if !row.Category.Valid() {
		return nil, NewBusinessError("INVALID_AI_TOOL_CATEGORY", "Category must be video or image", ErrInvalidShowcaseItem)
	}
	if err := f.upsert(ctx, ShowcaseAITools, adminID, row.ID, func() error { return f.aiToolRepo.Upsert(ctx, row) }); err != nil {
		return nil, err
	}
	return &dto.AdminUpsertShowcaseItemResponse{Message: "AI tool saved successfully", Item: ToAIToolDTO(*row)}, nil
}

func (f *ShowcaseFlowImpl) AdminDeleteShowcaseItem(ctx context.Context, kind ShowcaseKind, id uint, adminID uint) (*dto.AdminDeleteResponse, error) {
	if adminID == 0 {
		return nil, NewBusinessError("ADMIN_ID_REQUIRED", "Admin id is required", ErrAdminIDRequired)
	}
	if id == 0 {
		return nil, NewBusinessError("SHOWCASE_ITEM_NOT_FOUND", "Showcase item not found", ErrShowcaseItemNotFound)
	}

	var del func(context.Context, uint) (bool, error)
	switch kind {
	case ShowcaseHeroStats:
		del = f.heroStatRepo.Delete
	case ShowcaseSocialLinks:
		del = f.socialLinkRepo.Delete
	case ShowcaseAITools:
		del = f.aiToolRepo.Delete
	default:
		return nil, NewBusinessErrorf("INVALID_SHOWCASE_KIND", "Unknown showcase list %q", ErrInvalidShowcaseItem, kind)
	}

	deleted, err := del(ctx, id)
	if err != nil {
		return nil, NewBusinessError("SHOWCASE_DELETE_FAILED", "Failed to delete showcase item", err)
	}
	if !deleted {
		return nil, NewBusinessError("SHOWCASE_ITEM_NOT_FOUND", "Showcase item not found", ErrShowcaseItemNotFound)
	}

	f.invalidate(ctx)
	logging.L(ctx).Info("showcase item deleted", "admin_id", adminID, "kind", string(kind), "id", id)
	return &dto.AdminDeleteResponse{Message: "Showcase item deleted successfully"}, nil
}

// upsert runs save, maps a missing row to ErrShowcaseItemNotFound and drops the public cache
func (f *ShowcaseFlowImpl) upsert(ctx context.Context, kind ShowcaseKind, adminID, id uint, save func() error) error {
	if adminID == 0 {
		return NewBusinessError("ADMIN_ID_REQUIRED", "Admin id is required", ErrAdminIDRequired)
	}
	if err := save(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessErrorf("SHOWCASE_ITEM_NOT_FOUND", "%s entry %d not found", ErrShowcaseItemNotFound, kind, id)
		}
		return NewBusinessError("SHOWCASE_SAVE_FAILED", "Failed to save showcase item", err)
	}
	f.invalidate(ctx)
	logging.L(ctx).Info("showcase item saved", "admin_id", adminID, "kind", string(kind), "id", id)
	return nil
}

func (f *ShowcaseFlowImpl) invalidate(ctx context.Context) {
	f.cache.del(ctx,
		f.cache.key("public", string(models.SocialLinkHeader)),
		f.cache.key("public", string(models.SocialLinkFooter)),
		f.cache.key("public", string(models.SocialLinkBoth)),
	)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return true
		}
	}
	return false
}

func ToHeroStatDTO(s models.HeroStat) dto.HeroStatDTO {
	return dto.HeroStatDTO{ID: s.ID, Value: s.Value, Label: s.Label, SortOrder: s.SortOrder, IsVisible: s.IsVisible}
}

func ToSocialLinkDTO(l models.SocialLink) dto.SocialLinkDTO {
	return dto.SocialLinkDTO{
		ID:        l.ID,
		Name:      l.Name,
		URL:       l.URL,
		Icon:      l.Icon,
		Location:  string(l.Location),
		SortOrder: l.SortOrder,
		IsVisible: l.IsVisible,
	}
}

func ToAIToolDTO(t models.AITool) dto.AIToolDTO {
	return dto.AIToolDTO{ID: t.ID, Name: t.Name, Logo: t.Logo, Category: string(t.Category), SortOrder: t.SortOrder}
}
