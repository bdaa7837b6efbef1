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
	"github.com/artemmak/showreel/utils"
	"github.com/redis/go-redis/v9"
)

var projectSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxProjectSlugLength = 100

// PortfolioFlow serves the project gallery. Visitors only ever see published projects.
type PortfolioFlow interface {
	ListProjects(ctx context.Context, query *dto.ListProjectsQuery) (*dto.ListProjectsResponse, error)
	GetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error)
	AdminListProjects(ctx context.Context) (*dto.ListProjectsResponse, error)
	AdminGetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error)
	AdminUpsertProject(ctx context.Context, req *dto.AdminUpsertProjectRequest, adminID uint) (*dto.AdminUpsertProjectResponse, error)
	AdminDeleteProject(ctx context.Context, slug string, adminID uint) (*dto.AdminDeleteResponse, error)
}

type PortfolioFlowImpl struct {
	projectRepo repository.ProjectRepository
	cache       contentCache
}

// NewPortfolioFlow creates the flow; a nil redis client disables caching
func NewPortfolioFlow(projectRepo repository.ProjectRepository, rc *redis.Client, prefix string, ttl time.Duration) PortfolioFlow {
	return &PortfolioFlowImpl{
		projectRepo: projectRepo,
		cache:       newContentCache(rc, prefix, "projects", ttl),
	}
}

func (f *PortfolioFlowImpl) ListProjects(ctx context.Context, query *dto.ListProjectsQuery) (*dto.ListProjectsResponse, error) {
	filter := models.ProjectFilter{IsPublished: utils.ToPtr(true)}
	cacheKey := f.cache.key("published")
	if query != nil {
		if tag := strings.TrimSpace(query.Tag); tag != "" {
			filter.Tag = &tag
			cacheKey = f.cache.key("published", "tag", tag)
		}
	}

	var items []dto.ProjectDTO
	if f.cache.get(ctx, cacheKey, &items) {
		return &dto.ListProjectsResponse{Message: "Projects retrieved successfully", Items: items}, nil
	}

	rows, err := f.projectRepo.ByFilter(ctx, filter, "sort_order ASC, id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PROJECT_LIST_FAILED", "Failed to list projects", err)
	}
	items = toProjectDTOs(rows)
	f.cache.set(ctx, cacheKey, items)

	return &dto.ListProjectsResponse{Message: "Projects retrieved successfully", Items: items}, nil
}

func (f *PortfolioFlowImpl) GetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error) {
	slug, err := normalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	cacheKey := f.cache.key("slug", slug)
	var item dto.ProjectDTO
	if f.cache.get(ctx, cacheKey, &item) {
		return &dto.GetProjectResponse{Message: "Project retrieved successfully", Item: item}, nil
	}

	row, err := f.projectRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("PROJECT_FETCH_FAILED", "Failed to fetch project", err)
	}
	if row == nil || !row.IsPublished {
		return nil, NewBusinessError("PROJECT_NOT_FOUND", "Project not found", ErrProjectNotFound)
	}

	item = ToProjectDTO(*row)
	f.cache.set(ctx, cacheKey, item)
	return &dto.GetProjectResponse{Message: "Project retrieved successfully", Item: item}, nil
}

// AdminListProjects returns drafts and published projects, never cached
func (f *PortfolioFlowImpl) AdminListProjects(ctx context.Context) (*dto.ListProjectsResponse, error) {
	rows, err := f.projectRepo.ByFilter(ctx, models.ProjectFilter{}, "sort_order ASC, id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PROJECT_LIST_FAILED", "Failed to list projects", err)
	}
	return &dto.ListProjectsResponse{Message: "Projects retrieved successfully", Items: toProjectDTOs(rows)}, nil
}

// AdminGetProject returns a project regardless of its published flag, for previews
func (f *PortfolioFlowImpl) AdminGetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error) {
	slug, err := normalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	row, err := f.projectRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("PROJECT_FETCH_FAILED", "Failed to fetch project", err)
	}
	if row == nil {
		return nil, NewBusinessError("PROJECT_NOT_FOUND", "Project not found", ErrProjectNotFound)
	}
	return &dto.GetProjectResponse{Message: "Project retrieved successfully", Item: ToProjectDTO(*row)}, nil
}

// AdminUpsertProject creates the project with the given slug or replaces it
func (f *PortfolioFlowImpl) AdminUpsertProject(ctx context.Context, req *dto.AdminUpsertProjectRequest, adminID uint) (*dto.AdminUpsertProjectResponse, error) {
	if req == nil {
		return nil, NewBusinessError("PROJECT_SLUG_INVALID", "Project slug is required", ErrProjectSlugInvalid)
	}
	if adminID == 0 {
		return nil, NewBusinessError("ADMIN_ID_REQUIRED", "Admin id is required", ErrAdminIDRequired)
	}
	slug, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewBusinessError("PROJECT_TITLE_REQUIRED", "Project title is required", ErrProjectTitleRequired)
	}
	blocks, err := toContentBlocks(req.ContentBlocks)
	if err != nil {
		return nil, err
	}

	previous, err := f.projectRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("PROJECT_FETCH_FAILED", "Failed to fetch project", err)
	}

	row := &models.Project{
		Slug:          slug,
		Title:         title,
		Subtitle:      utils.TrimPtr(req.Subtitle),
		Thumbnail:     utils.TrimPtr(req.Thumbnail),
		VideoPreview:  utils.TrimPtr(req.VideoPreview),
		Tags:          cleanList(req.Tags),
		Year:          utils.TrimPtr(req.Year),
		Duration:      utils.TrimPtr(req.Duration),
		AITools:       cleanList(req.AITools),
		ContentBlocks: blocks,
		SortOrder:     req.SortOrder,
		IsPublished:   req.IsPublished,
	}
	if err := f.projectRepo.Upsert(ctx, row); err != nil {
		return nil, NewBusinessError("PROJECT_SAVE_FAILED", "Failed to save project", err)
	}

	saved, err := f.projectRepo.BySlug(ctx, slug)
	if err != nil || saved == nil {
		saved = row
	}
	staleTags := []string(row.Tags)
	if previous != nil {
		staleTags = append(staleTags, previous.Tags...)
	}
	f.invalidate(ctx, slug, staleTags)
	logging.L(ctx).Info("project saved",
		"admin_id", adminID,
		"slug", slug,
		"created", previous == nil,
		"published", row.IsPublished,
	)

	return &dto.AdminUpsertProjectResponse{
		Message: "Project saved successfully",
		Item:    ToProjectDTO(*saved),
	}, nil
}

func (f *PortfolioFlowImpl) AdminDeleteProject(ctx context.Context, slug string, adminID uint) (*dto.AdminDeleteResponse, error) {
	if adminID == 0 {
		return nil, NewBusinessError("ADMIN_ID_REQUIRED", "Admin id is required", ErrAdminIDRequired)
	}
	slug, err := normalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	existing, err := f.projectRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("PROJECT_FETCH_FAILED", "Failed to fetch project", err)
	}
	if existing == nil {
		return nil, NewBusinessError("PROJECT_NOT_FOUND", "Project not found", ErrProjectNotFound)
	}

	deleted, err := f.projectRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("PROJECT_DELETE_FAILED", "Failed to delete project", err)
	}
	if !deleted {
		return nil, NewBusinessError("PROJECT_NOT_FOUND", "Project not found", ErrProjectNotFound)
	}

	f.invalidate(ctx, slug, existing.Tags)
	logging.L(ctx).Info("project deleted", "admin_id", adminID, "slug", slug)
	return &dto.AdminDeleteResponse{Message: "Project deleted successfully"}, nil
}

// invalidate drops the project page, the gallery and the gallery filtered by each tag
func (f *PortfolioFlowImpl) invalidate(ctx context.Context, slug string, tags []string) {
	keys := []string{f.cache.key("slug", slug), f.cache.key("published")}
	for _, t := range tags {
		keys = append(keys, f.cache.key("published", "tag", t))
	}
	f.cache.del(ctx, keys...)
}

func normalizeSlug(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if len(slug) > maxProjectSlugLength || !projectSlugPattern.MatchString(slug) {
		return "", NewBusinessError("PROJECT_SLUG_INVALID", "Project slug must be lowercase words joined by hyphens", ErrProjectSlugInvalid)
	}
	return slug, nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order
func cleanList(in []string) models.StringList {
	out := models.StringList{}
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toContentBlocks(in []dto.ContentBlockDTO) (models.ContentBlocks, error) {
	out := make(models.ContentBlocks, 0, len(in))
	for i, b := range in {
		block := models.ContentBlock{
			Type:      models.ContentBlockType(strings.TrimSpace(b.Type)),
			Content:   b.Content,
			Src:       strings.TrimSpace(b.Src),
			BeforeSrc: strings.TrimSpace(b.BeforeSrc),
			AfterSrc:  strings.TrimSpace(b.AfterSrc),
			Caption:   strings.TrimSpace(b.Caption),
		}

		var missing string
		switch block.Type {
		case models.ContentBlockText:
			if strings.TrimSpace(block.Content) == "" {
				missing = "content"
			}
		case models.ContentBlockImage, models.ContentBlockVideo:
			if block.Src == "" {
				missing = "src"
			}
		case models.ContentBlockComparison:
			if block.BeforeSrc == "" || block.AfterSrc == "" {
				missing = "before_src and after_src"
			}
		default:
			return nil, NewBusinessErrorf("INVALID_CONTENT_BLOCK", "Content block %d has unknown type %q", ErrInvalidContentBlock, i, b.Type)
		}
		if missing != "" {
			return nil, NewBusinessErrorf("INVALID_CONTENT_BLOCK", "Content block %d (%s) requires %s", ErrInvalidContentBlock, i, block.Type, missing)
		}
		out = append(out, block)
	}
	return out, nil
}

func toProjectDTOs(rows []*models.Project) []dto.ProjectDTO {
	items := make([]dto.ProjectDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToProjectDTO(*r))
	}
	return items
}

// ToProjectDTO converts a stored project to its API representation
func ToProjectDTO(p models.Project) dto.ProjectDTO {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	tools := []string(p.AITools)
	if tools == nil {
		tools = []string{}
	}
	blocks := make([]dto.ContentBlockDTO, 0, len(p.ContentBlocks))
	for _, b := range p.ContentBlocks {
		blocks = append(blocks, dto.ContentBlockDTO{
			Type:      string(b.Type),
			Content:   b.Content,
			Src:       b.Src,
			BeforeSrc: b.BeforeSrc,
			AfterSrc:  b.AfterSrc,
			Caption:   b.Caption,
		})
	}
	return dto.ProjectDTO{
		Slug:          p.Slug,
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Thumbnail:     p.Thumbnail,
		VideoPreview:  p.VideoPreview,
		Tags:          tags,
		Year:          p.Year,
		Duration:      p.Duration,
		AITools:       tools,
		ContentBlocks: blocks,
		SortOrder:     p.SortOrder,
		IsPublished:   p.IsPublished,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
