package dto

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name               string   `json:"name" validate:"required,max=255"`
	Telegram           *string  `json:"telegram,omitempty" validate:"omitempty,max=255"`
	Email              *string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone              *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	ProjectDescription string   `json:"project_description" validate:"required,max=5000"`
	Attachments        []string `json:"attachments,omitempty" validate:"omitempty,max=10,dive,url"`
}

// CalculatorProjectRequest is submitted after the visitor accepts an estimate.
// The stored budget is recomputed server-side.
type CalculatorProjectRequest struct {
	Name               string          `json:"name" validate:"required,max=255"`
	Telegram           *string         `json:"telegram,omitempty" validate:"omitempty,max=255"`
	Email              *string         `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone              *string         `json:"phone,omitempty" validate:"omitempty,max=50"`
	ProjectDescription string          `json:"project_description" validate:"max=5000"`
	Estimate           EstimateRequest `json:"estimate" validate:"required"`
}

type SubmitProjectRequestResponse struct {
	Message        string `json:"message"`
	UUID           string `json:"uuid"`
	Status         string `json:"status"`
	BudgetEstimate *int64 `json:"budget_estimate,omitempty"`
}

// ProjectRequestDTO is the admin view of a stored request
type ProjectRequestDTO struct {
	UUID               string   `json:"uuid"`
	Source             string   `json:"source"`
	Name               string   `json:"name"`
	Telegram           *string  `json:"telegram,omitempty"`
	Email              *string  `json:"email,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	ProjectDescription string   `json:"project_description"`
	DurationSeconds    *int     `json:"duration_seconds,omitempty"`
	Pace               *string  `json:"pace,omitempty"`
	HasScenario        bool     `json:"has_scenario"`
	AudioOptions       []string `json:"audio_options"`
	Revisions          *string  `json:"revisions,omitempty"`
	Deadline           *string  `json:"deadline,omitempty"`
	NDA                *string  `json:"nda,omitempty"`
	BudgetEstimate     *int64   `json:"budget_estimate,omitempty"`
	Attachments        []string `json:"attachments"`
	Status             string   `json:"status"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// AdminListProjectRequestsFilter is bound from the query string
type AdminListProjectRequestsFilter struct {
	Status   string `query:"status" validate:"omitempty,oneof=new in_progress done rejected"`
	Source   string `query:"source" validate:"omitempty,oneof=contact_form calculator"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type AdminListProjectRequestsResponse struct {
	Message  string              `json:"message"`
	Items    []ProjectRequestDTO `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type AdminUpdateProjectRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress done rejected"`
}

type AdminUpdateProjectRequestStatusResponse struct {
	Message string            `json:"message"`
	Item    ProjectRequestDTO `json:"item"`
}

// AdminExportProjectRequestsResponse holds a generated workbook
type AdminExportProjectRequestsResponse struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}
