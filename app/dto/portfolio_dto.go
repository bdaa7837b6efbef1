package dto

type ContentBlockDTO struct {
	Type      string `json:"type" validate:"required,oneof=text image video comparison"`
	Content   string `json:"content,omitempty" validate:"max=10000"`
	Src       string `json:"src,omitempty" validate:"max=2000"`
	BeforeSrc string `json:"before_src,omitempty" validate:"max=2000"`
	AfterSrc  string `json:"after_src,omitempty" validate:"max=2000"`
	Caption   string `json:"caption,omitempty" validate:"max=500"`
}

// ProjectDTO is a portfolio entry as served to the site
type ProjectDTO struct {
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	Subtitle      *string           `json:"subtitle,omitempty"`
	Thumbnail     *string           `json:"thumbnail,omitempty"`
	VideoPreview  *string           `json:"video_preview,omitempty"`
	Tags          []string          `json:"tags"`
	Year          *string           `json:"year,omitempty"`
	Duration      *string           `json:"duration,omitempty"`
	AITools       []string          `json:"ai_tools"`
	ContentBlocks []ContentBlockDTO `json:"content_blocks"`
	SortOrder     int               `json:"sort_order"`
	IsPublished   bool              `json:"is_published"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

// ListProjectsQuery is bound from the query string
type ListProjectsQuery struct {
	Tag string `query:"tag" validate:"omitempty,max=64"`
}

type ListProjectsResponse struct {
	Message string       `json:"message"`
	Items   []ProjectDTO `json:"items"`
}

type GetProjectResponse struct {
	Message string     `json:"message"`
	Item    ProjectDTO `json:"item"`
}

type AdminUpsertProjectRequest struct {
	Slug          string            `json:"-"`
	Title         string            `json:"title" validate:"required,max=255"`
	Subtitle      *string           `json:"subtitle,omitempty" validate:"omitempty,max=500"`
	Thumbnail     *string           `json:"thumbnail,omitempty" validate:"omitempty,max=2000"`
	VideoPreview  *string           `json:"video_preview,omitempty" validate:"omitempty,max=2000"`
	Tags          []string          `json:"tags" validate:"max=20,dive,required,max=64"`
	Year          *string           `json:"year,omitempty" validate:"omitempty,max=16"`
	Duration      *string           `json:"duration,omitempty" validate:"omitempty,max=32"`
	AITools       []string          `json:"ai_tools" validate:"max=20,dive,required,max=100"`
	ContentBlocks []ContentBlockDTO `json:"content_blocks" validate:"max=50,dive"`
	SortOrder     int               `json:"sort_order" validate:"gte=0"`
	IsPublished   bool              `json:"is_published"`
}

type AdminUpsertProjectResponse struct {
	Message string     `json:"message"`
	Item    ProjectDTO `json:"item"`
}

type AdminDeleteResponse struct {
	Message string `json:"message"`
}

type HeroStatDTO struct {
	ID        uint   `json:"id"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
	IsVisible bool   `json:"is_visible"`
}

type SocialLinkDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Icon      string `json:"icon"`
	Location  string `json:"location"`
	SortOrder int    `json:"sort_order"`
	IsVisible bool   `json:"is_visible"`
}

type AIToolDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Logo      string `json:"logo"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
}

// ShowcaseQuery is bound from the query string; location narrows social links
type ShowcaseQuery struct {
	Location string `query:"location" validate:"omitempty,oneof=header footer both"`
}

// ShowcaseResponse carries the landing page lists in display order
type ShowcaseResponse struct {
	Message     string          `json:"message"`
	HeroStats   []HeroStatDTO   `json:"hero_stats"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
	VideoTools  []AIToolDTO     `json:"video_tools"`
	ImageTools  []AIToolDTO     `json:"image_tools"`
}

type AdminUpsertHeroStatRequest struct {
	ID        uint   `json:"id"`
	Value     string `json:"value" validate:"required,max=64"`
	Label     string `json:"label" validate:"required,max=255"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsVisible bool   `json:"is_visible"`
}

type AdminUpsertSocialLinkRequest struct {
	ID        uint   `json:"id"`
	Name      string `json:"name" validate:"required,max=100"`
	URL       string `json:"url" validate:"required,max=2000"`
	Icon      string `json:"icon" validate:"required,max=64"`
	Location  string `json:"location" validate:"omitempty,oneof=header footer both"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsVisible bool   `json:"is_visible"`
}

type AdminUpsertAIToolRequest struct {
	ID        uint   `json:"id"`
	Name      string `json:"name" validate:"required,max=100"`
	Logo      string `json:"logo" validate:"required,max=2000"`
	Category  string `json:"category" validate:"required,oneof=video image"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type AdminUpsertShowcaseItemResponse struct {
	Message string `json:"message"`
	Item    any    `json:"item"`
}
