package businessflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/models"
	"github.com/artemmak/showreel/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededProjectRepo() *fakeProjectRepo {
	return newFakeProjectRepo(
		&models.Project{Slug: "neon-city", Title: "Neon City", Tags: models.StringList{"music-video"}, SortOrder: 2, IsPublished: true},
		&models.Project{Slug: "desert-ad", Title: "Desert Ad", Tags: models.StringList{"commercial"}, SortOrder: 1, IsPublished: true},
		&models.Project{Slug: "secret-draft", Title: "Draft", SortOrder: 0, IsPublished: false},
	)
}

func projectSlugs(items []dto.ProjectDTO) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}

func TestPortfolioFlow_Public(t *testing.T) {
	ctx := context.Background()

	t.Run("list hides drafts and keeps sort order", func(t *testing.T) {
		flow := NewPortfolioFlow(seededProjectRepo(), nil, "", time.Minute)
		resp, err := flow.ListProjects(ctx, &dto.ListProjectsQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"desert-ad", "neon-city"}, projectSlugs(resp.Items))
		assert.Equal(t, []string{"commercial"}, resp.Items[0].Tags)
		assert.NotNil(t, resp.Items[0].ContentBlocks)
	})

	t.Run("list by tag", func(t *testing.T) {
		flow := NewPortfolioFlow(seededProjectRepo(), nil, "", time.Minute)
		resp, err := flow.ListProjects(ctx, &dto.ListProjectsQuery{Tag: " music-video "})
		require.NoError(t, err)
		assert.Equal(t, []string{"neon-city"}, projectSlugs(resp.Items))
	})

	t.Run("get by slug", func(t *testing.T) {
		flow := NewPortfolioFlow(seededProjectRepo(), nil, "", time.Minute)
		resp, err := flow.GetProject(ctx, "neon-city")
		require.NoError(t, err)
		assert.Equal(t, "Neon City", resp.Item.Title)
	})

	t.Run("get errors", func(t *testing.T) {
		flow := NewPortfolioFlow(seededProjectRepo(), nil, "", time.Minute)

		_, err := flow.GetProject(ctx, "secret-draft")
		assert.True(t, IsProjectNotFound(err))

		_, err = flow.GetProject(ctx, "missing")
		assert.True(t, IsProjectNotFound(err))

		_, err = flow.GetProject(ctx, "Bad Slug")
		assert.ErrorIs(t, err, ErrProjectSlugInvalid)

		broken := seededProjectRepo()
		broken.err = errors.New("db down")
		_, err = NewPortfolioFlow(broken, nil, "", time.Minute).GetProject(ctx, "neon-city")
		var be *BusinessError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, "PROJECT_FETCH_FAILED", be.Code)
	})
}

func TestPortfolioFlow_Admin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees drafts", func(t *testing.T) {
		flow := NewPortfolioFlow(seededProjectRepo(), nil, "", time.Minute)
		list, err := flow.AdminListProjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"secret-draft", "desert-ad", "neon-city"}, projectSlugs(list.Items))

		got, err := flow.AdminGetProject(ctx, "secret-draft")
		require.NoError(t, err)
		assert.False(t, got.Item.IsPublished)
	})

	t.Run("create then publish", func(t *testing.T) {
		repo := seededProjectRepo()
		flow := NewPortfolioFlow(repo, nil, "", time.Minute)

		req := &dto.AdminUpsertProjectRequest{
			Slug:     "glass-forest",
			Title:    "  Glass Forest ",
			Subtitle: utils.ToPtr("  "),
			Year:     utils.ToPtr("2025"),
			Tags:     []string{"short", " short", "", "fantasy"},
			AITools:  []string{"Sora", "Runway"},
			ContentBlocks: []dto.ContentBlockDTO{
				{Type: "text", Content: "Brief"},
				{Type: "video", Src: "https://cdn.example.com/forest.mp4"},
				{Type: "comparison", BeforeSrc: "/a.png", AfterSrc: "/b.png", Caption: "grade"},
			},
			SortOrder: 3,
		}
		resp, err := flow.AdminUpsertProject(ctx, req, 1)
		require.NoError(t, err)
		assert.Equal(t, "Glass Forest", resp.Item.Title)
		assert.Nil(t, resp.Item.Subtitle)
		assert.Equal(t, []string{"short", "fantasy"}, resp.Item.Tags)
		require.Len(t, resp.Item.ContentBlocks, 3)
		assert.Equal(t, "/b.png", resp.Item.ContentBlocks[2].AfterSrc)

		_, err = flow.GetProject(ctx, "glass-forest")
		assert.True(t, IsProjectNotFound(err))

		req.IsPublished = true
		req.Title = "Glass Forest (director's cut)"
		_, err = flow.AdminUpsertProject(ctx, req, 1)
		require.NoError(t, err)

		got, err := flow.GetProject(ctx, "glass-forest")
		require.NoError(t, err)
		assert.Equal(t, "Glass Forest (director's cut)", got.Item.Title)
		assert.Len(t, repo.rows, 4)
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			req     *dto.AdminUpsertProjectRequest
			adminID uint
			want    error
		}{
			{"missing admin", &dto.AdminUpsertProjectRequest{Slug: "a", Title: "A"}, 0, ErrAdminIDRequired},
			{"uppercase slug", &dto.AdminUpsertProjectRequest{Slug: "Neon", Title: "A"}, 1, ErrProjectSlugInvalid},
			{"double hyphen", &dto.AdminUpsertProjectRequest{Slug: "a--b", Title: "A"}, 1, ErrProjectSlugInvalid},
			{"blank title", &dto.AdminUpsertProjectRequest{Slug: "a", Title: "   "}, 1, ErrProjectTitleRequired},
			{"text block without content", &dto.AdminUpsertProjectRequest{
				Slug: "a", Title: "A", ContentBlocks: []dto.ContentBlockDTO{{Type: "text"}},
			}, 1, ErrInvalidContentBlock},
			{"image block without src", &dto.AdminUpsertProjectRequest{
				Slug: "a", Title: "A", ContentBlocks: []dto.ContentBlockDTO{{Type: "image", Caption: "x"}},
			}, 1, ErrInvalidContentBlock},
			{"comparison with one side", &dto.AdminUpsertProjectRequest{
				Slug: "a", Title: "A", ContentBlocks: []dto.ContentBlockDTO{{Type: "comparison", BeforeSrc: "/a.png"}},
			}, 1, ErrInvalidContentBlock},
			{"unknown block", &dto.AdminUpsertProjectRequest{
				Slug: "a", Title: "A", ContentBlocks: []dto.ContentBlockDTO{{Type: "audio", Src: "/a.mp3"}},
			}, 1, ErrInvalidContentBlock},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := seededProjectRepo()
				flow := NewPortfolioFlow(repo, nil, "", time.Minute)
				_, err := flow.AdminUpsertProject(ctx, tt.req, tt.adminID)
				assert.ErrorIs(t, err, tt.want)
				assert.Len(t, repo.rows, 3)
			})
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo := seededProjectRepo()
		flow := NewPortfolioFlow(repo, nil, "", time.Minute)

		_, err := flow.AdminDeleteProject(ctx, "desert-ad", 1)
		require.NoError(t, err)
		assert.NotContains(t, repo.rows, "desert-ad")

		_, err = flow.AdminDeleteProject(ctx, "desert-ad", 1)
		assert.True(t, IsProjectNotFound(err))

		_, err = flow.AdminDeleteProject(ctx, "neon-city", 0)
		assert.ErrorIs(t, err, ErrAdminIDRequired)
	})
}

// TestPortfolioFlow_RedisCache runs against a live Redis when TEST_REDIS_URL is set
func TestPortfolioFlow_RedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opts)
	defer func() { _ = rc.Close() }()

	ctx := context.Background()
	require.NoError(t, rc.Ping(ctx).Err())

	prefix := fmt.Sprintf("test:%d:", time.Now().UnixNano())
	defer func() {
		keys, _ := rc.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			_ = rc.Del(ctx, keys...).Err()
		}
	}()

	repo := seededProjectRepo()
	flow := NewPortfolioFlow(repo, rc, prefix, time.Minute)

	list, err := flow.ListProjects(ctx, &dto.ListProjectsQuery{Tag: "music-video"})
	require.NoError(t, err)
	assert.Equal(t, []string{"neon-city"}, projectSlugs(list.Items))
	_, err = flow.GetProject(ctx, "neon-city")
	require.NoError(t, err)

	exists, err := rc.Exists(ctx, prefix+"projects:published:tag:music-video", prefix+"projects:slug:neon-city").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), exists)

	// retagging must drop the list cached under the old tag
	_, err = flow.AdminUpsertProject(ctx, &dto.AdminUpsertProjectRequest{
		Slug: "neon-city", Title: "Neon City", Tags: []string{"commercial"}, SortOrder: 2, IsPublished: true,
	}, 1)
	require.NoError(t, err)

	list, err = flow.ListProjects(ctx, &dto.ListProjectsQuery{Tag: "music-video"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	list, err = flow.ListProjects(ctx, &dto.ListProjectsQuery{Tag: "commercial"})
	require.NoError(t, err)
	assert.Equal(t, []string{"desert-ad", "neon-city"}, projectSlugs(list.Items))
}
