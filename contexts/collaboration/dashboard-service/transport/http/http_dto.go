package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type QueueEntryDTO struct {
	InvitationID    string   `json:"invitation_id"`
	CampaignID      string   `json:"campaign_id"`
	CreatorID       string   `json:"creator_id"`
	Status          string   `json:"status"`
	OfferedPayout   float64  `json:"offered_payout"`
	NegotiatedDelta *float64 `json:"negotiated_delta,omitempty"`
	UpdatedAt       string   `json:"updated_at"`
}

type NegotiationQueueResponse struct {
	BrandID          string          `json:"brand_id"`
	PendingCount     int             `json:"pending_count"`
	NegotiatingCount int             `json:"negotiating_count"`
	Entries          []QueueEntryDTO `json:"entries"`
	GeneratedAt      string          `json:"generated_at"`
}

type DeliverableProgressDTO struct {
	DeliverableID string `json:"deliverable_id"`
	Title         string `json:"title"`
	State         string `json:"state"`
}

type ProgressDTO struct {
	Items       []DeliverableProgressDTO `json:"items"`
	AllApproved bool                     `json:"all_approved"`
}

type InboxEntryDTO struct {
	InvitationID    string       `json:"invitation_id"`
	CampaignID      string       `json:"campaign_id"`
	CampaignTitle   string       `json:"campaign_title,omitempty"`
	BrandID         string       `json:"brand_id"`
	Status          string       `json:"status"`
	OfferedPayout   float64      `json:"offered_payout"`
	NegotiatedDelta *float64     `json:"negotiated_delta,omitempty"`
	UpdatedAt       string       `json:"updated_at"`
	Progress        *ProgressDTO `json:"progress,omitempty"`
}

type CreatorInboxResponse struct {
	CreatorID   string          `json:"creator_id"`
	Entries     []InboxEntryDTO `json:"entries"`
	GeneratedAt string          `json:"generated_at"`
}
