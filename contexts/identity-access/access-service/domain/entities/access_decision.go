package entities

import "time"

// Decision reasons. Negative decisions are decisions, not errors.
const (
	ReasonGlobalAdmin       = "global_admin"
	ReasonBrandOwner        = "brand_owner"
	ReasonAgencyAdmin       = "agency_admin_role"
	ReasonFinanceScope      = "finance_financial_scope"
	ReasonManagerAssigned   = "campaign_manager_assigned"
	ReasonManagerUnassigned = "campaign_manager_unassigned"
	ReasonCreatorInvited    = "creator_invitation"
	ReasonNoAccess          = "no_access"
)

// AccessDecision is the full answer to "what may this principal do here".
// Callers act on the booleans; Reason exists for audit trails and debugging.
type AccessDecision struct {
	Role              string
	CanAccessCampaign bool
	IsOwner           bool
	IsAdmin           bool
	Reason            string
	CheckedAt         time.Time
}
