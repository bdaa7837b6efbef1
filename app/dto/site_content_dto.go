package dto

type SiteContentItem struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

type GetSiteContentResponse struct {
	Message string          `json:"message"`
	Item    SiteContentItem `json:"item"`
}

type ListSiteContentResponse struct {
	Message string            `json:"message"`
	Items   []SiteContentItem `json:"items"`
}

type AdminUpsertSiteContentRequest struct {
	Key         string  `json:"-"`
	Value       string  `json:"value" validate:"required,max=10000"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type AdminUpsertSiteContentResponse struct {
	Message string          `json:"message"`
	Item    SiteContentItem `json:"item"`
}
