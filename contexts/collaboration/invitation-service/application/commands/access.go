package commands

import "meridian/contexts/collaboration/invitation-service/ports"

// canOperate reports whether the resolved access lets the actor run
// brand-side invitation operations. Finance members resolve campaign access
// for financial views but do not operate invitations.
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
