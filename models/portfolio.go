package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/artemmak/showreel/utils"
	"gorm.io/gorm"
)

// ContentBlockType selects how a block of a project case study is rendered
type ContentBlockType string

const (
	ContentBlockText       ContentBlockType = "text"
	ContentBlockImage      ContentBlockType = "image"
	ContentBlockVideo      ContentBlockType = "video"
	ContentBlockComparison ContentBlockType = "comparison"
)

func (t ContentBlockType) Valid() bool {
	switch t {
	case ContentBlockText, ContentBlockImage, ContentBlockVideo, ContentBlockComparison:
		return true
	}
	return false
}

// ContentBlock is one section of a project page. Text blocks carry Content,
// image and video blocks carry Src, comparison blocks carry both sides.
type ContentBlock struct {
	Type      ContentBlockType `json:"type"`
	Content   string           `json:"content,omitempty"`
	Src       string           `json:"src,omitempty"`
	BeforeSrc string           `json:"before_src,omitempty"`
	AfterSrc  string           `json:"after_src,omitempty"`
	Caption   string           `json:"caption,omitempty"`
}

// ContentBlocks is persisted as a jsonb array
type ContentBlocks []ContentBlock

// Value implements the driver.Valuer interface for ContentBlocks
func (b ContentBlocks) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ContentBlock(b))
}

// Scan implements the sql.Scanner interface for ContentBlocks
func (b *ContentBlocks) Scan(value any) error {
	if value == nil {
		*b = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ContentBlocks", value)
	}

	var out []ContentBlock
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*b = out
	return nil
}

// Project is a portfolio entry. Drafts (IsPublished false) are visible to admins only.
// Table: projects
type Project struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Slug          string        `gorm:"size:100;not null;uniqueIndex:uk_projects_slug" json:"slug"`
	Title         string        `gorm:"size:255;not null" json:"title"`
	Subtitle      *string       `gorm:"size:500" json:"subtitle,omitempty"`
	Thumbnail     *string       `gorm:"type:text" json:"thumbnail,omitempty"`
	VideoPreview  *string       `gorm:"type:text" json:"video_preview,omitempty"`
	Tags          StringList    `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Year          *string       `gorm:"size:16" json:"year,omitempty"`
	Duration      *string       `gorm:"size:32" json:"duration,omitempty"`
	AITools       StringList    `gorm:"column:ai_tools;type:jsonb;not null;default:'[]'" json:"ai_tools"`
	ContentBlocks ContentBlocks `gorm:"type:jsonb;not null;default:'[]'" json:"content_blocks"`
	SortOrder     int           `gorm:"not null;default:0;index:idx_projects_sort_order" json:"sort_order"`
	IsPublished   bool          `gorm:"not null;default:false" json:"is_published"`
	CreatedAt     time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	stampSave(&p.CreatedAt, &p.UpdatedAt)
	return nil
}

// HasTag reports whether the project is labelled with tag
func (p *Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type ProjectFilter struct {
	Slug        *string `json:"slug,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
	Tag         *string `json:"tag,omitempty"`
}

// HeroStat is a figure shown in the landing page hero, e.g. "120+ / projects"
// Table: hero_stats
type HeroStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     string    `gorm:"size:64;not null" json:"value"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool      `gorm:"not null" json:"is_visible"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (HeroStat) TableName() string {
	return "hero_stats"
}

func (s HeroStat) GetID() uint {
	return s.ID
}

func (s *HeroStat) BeforeSave(tx *gorm.DB) error {
	stampSave(&s.CreatedAt, &s.UpdatedAt)
	return nil
}

// SocialLinkLocation says where on the page a link is rendered
type SocialLinkLocation string

const (
	SocialLinkHeader SocialLinkLocation = "header"
	SocialLinkFooter SocialLinkLocation = "footer"
	SocialLinkBoth   SocialLinkLocation = "both"
)

func (l SocialLinkLocation) Valid() bool {
	return l == SocialLinkHeader || l == SocialLinkFooter || l == SocialLinkBoth
}

// ShownIn reports whether a link placed at l is rendered in section
func (l SocialLinkLocation) ShownIn(section SocialLinkLocation) bool {
	return l == SocialLinkBoth || section == SocialLinkBoth || l == section
}

// SocialLink is a contact or social network link
// Table: social_links
type SocialLink struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Name      string             `gorm:"size:100;not null" json:"name"`
	URL       string             `gorm:"column:url;type:text;not null" json:"url"`
	Icon      string             `gorm:"size:64;not null" json:"icon"`
	Location  SocialLinkLocation `gorm:"size:16;not null;default:'both'" json:"location"`
	SortOrder int                `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool               `gorm:"not null" json:"is_visible"`
	CreatedAt time.Time          `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time          `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (SocialLink) TableName() string {
	return "social_links"
}

func (l SocialLink) GetID() uint {
	return l.ID
}

func (l *SocialLink) BeforeSave(tx *gorm.DB) error {
	stampSave(&l.CreatedAt, &l.UpdatedAt)
	return nil
}

// AIToolCategory groups the tools strip on the landing page
type AIToolCategory string

const (
	AIToolVideo AIToolCategory = "video"
	AIToolImage AIToolCategory = "image"
)

func (c AIToolCategory) Valid() bool {
	return c == AIToolVideo || c == AIToolImage
}

// AITool is a generator credited on the site
// Table: ai_tools
type AITool struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Logo      string         `gorm:"type:text;not null" json:"logo"`
	Category  AIToolCategory `gorm:"size:16;not null" json:"category"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (AITool) TableName() string {
	return "ai_tools"
}

func (t AITool) GetID() uint {
	return t.ID
}

func (t *AITool) BeforeSave(tx *gorm.DB) error {
	stampSave(&t.CreatedAt, &t.UpdatedAt)
	return nil
}

func stampSave(createdAt, updatedAt *time.Time) {
	now := utils.UTCNow()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
