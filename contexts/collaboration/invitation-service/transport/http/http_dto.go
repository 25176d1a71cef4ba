package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DeliverableSpecDTO struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type InviteCreatorRequest struct {
	BrandID             string               `json:"brand_id"`
	CreatorID           string               `json:"creator_id"`
	OfferedPayout       float64              `json:"offered_payout"`
	Deliverables        []DeliverableSpecDTO `json:"deliverables"`
	TimelineStart       string               `json:"timeline_start,omitempty"`
	TimelineEnd         string               `json:"timeline_end,omitempty"`
	SpecialRequirements string               `json:"special_requirements,omitempty"`
	ExpiresAt           string               `json:"expires_at,omitempty"`
}

type NegotiateRequest struct {
	Delta float64 `json:"delta"`
}

type CounterOfferRequest struct {
	OfferedPayout float64 `json:"offered_payout"`
}

type InvitationDTO struct {
	InvitationID        string               `json:"invitation_id"`
	CampaignID          string               `json:"campaign_id"`
	BrandID             string               `json:"brand_id"`
	CreatorID           string               `json:"creator_id"`
	Status              string               `json:"status"`
	BasePayout          float64              `json:"base_payout"`
	OfferedPayout       float64              `json:"offered_payout"`
	NegotiatedDelta     *float64             `json:"negotiated_delta,omitempty"`
	Deliverables        []DeliverableSpecDTO `json:"deliverables"`
	TimelineStart       string               `json:"timeline_start,omitempty"`
	TimelineEnd         string               `json:"timeline_end,omitempty"`
	SpecialRequirements string               `json:"special_requirements,omitempty"`
	ExpiresAt           string               `json:"expires_at,omitempty"`
	CreatedAt           string               `json:"created_at"`
	UpdatedAt           string               `json:"updated_at"`
	RespondedAt         string               `json:"responded_at,omitempty"`
}

type TrackingLinkDTO struct {
	LinkID       string `json:"link_id"`
	CampaignID   string `json:"campaign_id"`
	CreatorID    string `json:"creator_id"`
	InvitationID string `json:"invitation_id"`
	Code         string `json:"code"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at"`
}

type InvitationResponse struct {
	Invitation InvitationDTO `json:"invitation"`
}

type AcceptInvitationResponse struct {
	Invitation   InvitationDTO   `json:"invitation"`
	TrackingLink TrackingLinkDTO `json:"tracking_link"`
}

type ListInvitationsResponse struct {
	Items []InvitationDTO `json:"items"`
}

type ListTrackingLinksResponse struct {
	Items []TrackingLinkDTO `json:"items"`
}
