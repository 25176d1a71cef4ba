package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	BrandID       string  `json:"brand_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	BudgetTotal   float64 `json:"budget_total"`
	TimelineStart string  `json:"timeline_start,omitempty"`
	TimelineEnd   string  `json:"timeline_end,omitempty"`
}

type ChangeStatusRequest struct {
	ToStatus string `json:"to_status"`
	Reason   string `json:"reason,omitempty"`
}

type DeliverableDefinitionDTO struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type DefineDeliverablesRequest struct {
	Deliverables []DeliverableDefinitionDTO `json:"deliverables"`
}

type CampaignDTO struct {
	CampaignID     string  `json:"campaign_id"`
	BrandID        string  `json:"brand_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Status         string  `json:"status"`
	BudgetTotal    float64 `json:"budget_total"`
	BudgetReserved float64 `json:"budget_reserved"`
	BudgetSpent    float64 `json:"budget_spent"`
	TimelineStart  string  `json:"timeline_start,omitempty"`
	TimelineEnd    string  `json:"timeline_end,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	LaunchedAt     string  `json:"launched_at,omitempty"`
	CompletedAt    string  `json:"completed_at,omitempty"`
}

type StateHistoryDTO struct {
	HistoryID    string `json:"history_id"`
	CampaignID   string `json:"campaign_id"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
	ChangedBy    string `json:"changed_by"`
	ChangeReason string `json:"change_reason,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type CampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type ListStateHistoryResponse struct {
	Items []StateHistoryDTO `json:"items"`
}
