package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AssignManagerRequest struct {
	BrandID    string `json:"brand_id"`
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
}

type RevokeManagerRequest struct {
	BrandID    string `json:"brand_id"`
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
}

type AddMembershipRequest struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsDefault bool   `json:"is_default"`
}

type AccessDecisionDTO struct {
	Role              string `json:"role,omitempty"`
	CanAccessCampaign bool   `json:"can_access_campaign"`
	IsOwner           bool   `json:"is_owner"`
	IsAdmin           bool   `json:"is_admin"`
	Reason            string `json:"reason"`
	CheckedAt         string `json:"checked_at"`
}

type MembershipDTO struct {
	BrandID   string `json:"brand_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

type AssignmentDTO struct {
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
	AssignedBy string `json:"assigned_by"`
	CreatedAt  string `json:"created_at"`
}

type AccessDecisionResponse struct {
	Decision AccessDecisionDTO `json:"decision"`
}

type MembershipResponse struct {
	Membership MembershipDTO `json:"membership"`
}

type AssignmentResponse struct {
	Assignment AssignmentDTO `json:"assignment"`
}

type ListMembershipsResponse struct {
	Items []MembershipDTO `json:"items"`
}
