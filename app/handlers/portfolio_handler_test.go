package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/artemmak/showreel/app/dto"
	businessflow "github.com/artemmak/showreel/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPortfolioFlow struct {
	gotQuery    *dto.ListProjectsQuery
	upserted    *dto.AdminUpsertProjectRequest
	upsertErr   error
	deletedBy   uint
	deletedSlug string
}

func (s *stubPortfolioFlow) ListProjects(ctx context.Context, query *dto.ListProjectsQuery) (*dto.ListProjectsResponse, error) {
	s.gotQuery = query
	return &dto.ListProjectsResponse{Message: "ok", Items: []dto.ProjectDTO{{Slug: "neon-city"}}}, nil
}

func (s *stubPortfolioFlow) GetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error) {
	if slug != "neon-city" {
		return nil, businessflow.NewBusinessError("PROJECT_NOT_FOUND", "Project not found", businessflow.ErrProjectNotFound)
	}
	return &dto.GetProjectResponse{Message: "ok", Item: dto.ProjectDTO{Slug: slug, Title: "Neon City"}}, nil
}

func (s *stubPortfolioFlow) AdminListProjects(ctx context.Context) (*dto.ListProjectsResponse, error) {
	return &dto.ListProjectsResponse{Message: "ok", Items: []dto.ProjectDTO{}}, nil
}

func (s *stubPortfolioFlow) AdminGetProject(ctx context.Context, slug string) (*dto.GetProjectResponse, error) {
	return s.GetProject(ctx, slug)
}

func (s *stubPortfolioFlow) AdminUpsertProject(ctx context.Context, req *dto.AdminUpsertProjectRequest, adminID uint) (*dto.AdminUpsertProjectResponse, error) {
	s.upserted = req
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return &dto.AdminUpsertProjectResponse{Message: "saved", Item: dto.ProjectDTO{Slug: req.Slug, Title: req.Title}}, nil
}

func (s *stubPortfolioFlow) AdminDeleteProject(ctx context.Context, slug string, adminID uint) (*dto.AdminDeleteResponse, error) {
	s.deletedBy, s.deletedSlug = adminID, slug
	return &dto.AdminDeleteResponse{Message: "deleted"}, nil
}

type stubShowcaseFlow struct {
	gotLocation string
	gotKind     businessflow.ShowcaseKind
	gotID       uint
	socialLink  *dto.AdminUpsertSocialLinkRequest
}

func (s *stubShowcaseFlow) GetShowcase(ctx context.Context, query *dto.ShowcaseQuery) (*dto.ShowcaseResponse, error) {
	s.gotLocation = query.Location
	return &dto.ShowcaseResponse{Message: "ok", HeroStats: []dto.HeroStatDTO{{Value: "120+", Label: "projects"}}}, nil
}

func (s *stubShowcaseFlow) AdminGetShowcase(ctx context.Context) (*dto.ShowcaseResponse, error) {
	return &dto.ShowcaseResponse{Message: "ok"}, nil
}

func (s *stubShowcaseFlow) AdminUpsertHeroStat(ctx context.Context, req *dto.AdminUpsertHeroStatRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	return &dto.AdminUpsertShowcaseItemResponse{Message: "saved"}, nil
}

func (s *stubShowcaseFlow) AdminUpsertSocialLink(ctx context.Context, req *dto.AdminUpsertSocialLinkRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	s.socialLink = req
	if req.URL == "javascript:alert(1)" {
		return nil, businessflow.NewBusinessError("INVALID_SOCIAL_LINK_URL", "bad url", businessflow.ErrInvalidShowcaseItem)
	}
	return &dto.AdminUpsertShowcaseItemResponse{Message: "saved"}, nil
}

func (s *stubShowcaseFlow) AdminUpsertAITool(ctx context.Context, req *dto.AdminUpsertAIToolRequest, adminID uint) (*dto.AdminUpsertShowcaseItemResponse, error) {
	return &dto.AdminUpsertShowcaseItemResponse{Message: "saved"}, nil
}

func (s *stubShowcaseFlow) AdminDeleteShowcaseItem(ctx context.Context, kind businessflow.ShowcaseKind, id uint, adminID uint) (*dto.AdminDeleteResponse, error) {
	s.gotKind, s.gotID = kind, id
	if id == 404 {
		return nil, businessflow.NewBusinessError("SHOWCASE_ITEM_NOT_FOUND", "Showcase item not found", businessflow.ErrShowcaseItemNotFound)
	}
	return &dto.AdminDeleteResponse{Message: "deleted"}, nil
}

func TestPortfolioHandlers(t *testing.T) {
	flow := &stubPortfolioFlow{}
	app := fiber.New()
	pub := NewPortfolioHandler(flow)
	adm := NewPortfolioAdminHandler(flow)
	app.Get("/projects", pub.List)
	app.Get("/projects/:slug", pub.Get)
	app.Put("/admin/projects/:slug", asAdmin(1), adm.Upsert)
	app.Delete("/admin/projects/:slug", asAdmin(2), adm.Delete)
	app.Put("/anon/projects/:slug", adm.Upsert)

	resp, _ := doJSON(t, app, http.MethodGet, "/projects?tag=music-video", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, flow.gotQuery)
	assert.Equal(t, "music-video", flow.gotQuery.Tag)

	resp, env := doJSON(t, app, http.MethodGet, "/projects/neon-city", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var item dto.GetProjectResponse
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Neon City", item.Item.Title)

	resp, env = doJSON(t, app, http.MethodGet, "/projects/draft", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PROJECT_NOT_FOUND", env.Error.Code)

	resp, _ = doJSON(t, app, http.MethodPut, "/admin/projects/glass-forest", map[string]any{
		"title":          "Glass Forest",
		"tags":           []string{"short"},
		"content_blocks": []map[string]any{{"type": "text", "content": "Brief"}},
		"is_published":   true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, flow.upserted)
	assert.Equal(t, "glass-forest", flow.upserted.Slug)
	assert.True(t, flow.upserted.IsPublished)

	resp, env = doJSON(t, app, http.MethodPut, "/admin/projects/glass-forest", map[string]any{
		"title":          "Glass Forest",
		"content_blocks": []map[string]any{{"type": "audio"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	flow.upsertErr = businessflow.NewBusinessError("PROJECT_SLUG_INVALID", "bad slug", businessflow.ErrProjectSlugInvalid)
	resp, env = doJSON(t, app, http.MethodPut, "/admin/projects/Bad_Slug", map[string]any{"title": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PROJECT_SLUG_INVALID", env.Error.Code)

	resp, _ = doJSON(t, app, http.MethodPut, "/anon/projects/glass-forest", map[string]any{"title": "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/projects/neon-city", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(2), flow.deletedBy)
	assert.Equal(t, "neon-city", flow.deletedSlug)
}

func TestShowcaseHandlers(t *testing.T) {
	flow := &stubShowcaseFlow{}
	app := fiber.New()
	app.Get("/showcase", NewShowcaseHandler(flow).Get)
	adm := NewShowcaseAdminHandler(flow)
	app.Put("/admin/showcase/social-links", asAdmin(1), adm.UpsertSocialLink)
	app.Delete("/admin/showcase/:kind/:id", asAdmin(1), adm.Delete)

	resp, env := doJSON(t, app, http.MethodGet, "/showcase?location=footer", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "footer", flow.gotLocation)
	var showcase dto.ShowcaseResponse
	require.NoError(t, json.Unmarshal(env.Data, &showcase))
	require.Len(t, showcase.HeroStats, 1)

	resp, env = doJSON(t, app, http.MethodGet, "/showcase?location=sidebar", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	resp, _ = doJSON(t, app, http.MethodPut, "/admin/showcase/social-links", map[string]any{
		"name": "Telegram", "url": "https://t.me/x", "icon": "telegram", "location": "header", "is_visible": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, flow.socialLink)
	assert.True(t, flow.socialLink.IsVisible)

	resp, env = doJSON(t, app, http.MethodPut, "/admin/showcase/social-links", map[string]any{
		"name": "X", "url": "javascript:alert(1)", "icon": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_SOCIAL_LINK_URL", env.Error.Code)

	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/showcase/ai-tools/7", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, businessflow.ShowcaseAITools, flow.gotKind)
	assert.Equal(t, uint(7), flow.gotID)

	resp, env = doJSON(t, app, http.MethodDelete, "/admin/showcase/ai-tools/404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SHOWCASE_ITEM_NOT_FOUND", env.Error.Code)

	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/showcase/ai-tools/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
