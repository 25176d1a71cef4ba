package commands

import "meridian/contexts/collaboration/campaign-service/ports"

// canOperate mirrors the brand-side operator rule used across the
// collaboration services.
func canOperate(access ports.CampaignAccess) bool {
	if access.IsAdmin || access.IsOwner {
		return true
	}
	switch access.Role {
	case "agency_admin":
		return true
	case "campaign_manager":
		return access.CanAccessCampaign
	default:
		return false
	}
}
