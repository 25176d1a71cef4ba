package entities

import (
	"strings"
	"time"
)

type MembershipRole string

const (
	RoleAgencyAdmin     MembershipRole = "agency_admin"
	RoleFinance         MembershipRole = "finance"
	RoleCampaignManager MembershipRole = "campaign_manager"
)

type Brand struct {
	BrandID     string
	OwnerUserID string
	Name        string
}

// BrandMembership binds a user to a brand under one role. At most one
// membership per user carries IsDefault, the brand their console opens on.
type BrandMembership struct {
	BrandID   string
	UserID    string
	Role      MembershipRole
	IsDefault bool
	CreatedAt time.Time
}

func (m BrandMembership) Validate() bool {
	return strings.TrimSpace(m.BrandID) != "" &&
		strings.TrimSpace(m.UserID) != "" &&
		IsSupportedRole(m.Role)
}

// ManagerAssignment scopes a campaign_manager membership to one campaign.
type ManagerAssignment struct {
	CampaignID string
	UserID     string
	AssignedBy string
	CreatedAt  time.Time
}

func IsSupportedRole(value MembershipRole) bool {
	switch value {
	case RoleAgencyAdmin, RoleFinance, RoleCampaignManager:
		return true
	default:
		return false
	}
}
