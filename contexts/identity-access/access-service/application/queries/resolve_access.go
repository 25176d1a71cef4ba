package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "meridian/contexts/identity-access/access-service/application"
	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
)

type ResolveAccessQuery struct {
	PrincipalID string
	BrandID     string
	CampaignID  string
}

// ResolveAccessUseCase evaluates a principal's effective access. The chain
// is ordered: global admin, brand ownership, membership role, manager
// assignment, creator invitation fallback. Absence of access resolves to a
// negative decision; only store faults surface as errors.
type ResolveAccessUseCase struct {
	Repository  ports.Repository
	Invitations ports.InvitationProvider
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc ResolveAccessUseCase) Execute(ctx context.Context, query ResolveAccessQuery) (entities.AccessDecision, error) {
	logger := application.ResolveLogger(uc.Logger)

	principalID := strings.TrimSpace(query.PrincipalID)
	brandID := strings.TrimSpace(query.BrandID)
	campaignID := strings.TrimSpace(query.CampaignID)
	checkedAt := uc.Clock.Now().UTC()

	if principalID == "" {
		return entities.AccessDecision{Reason: entities.ReasonNoAccess, CheckedAt: checkedAt}, nil
	}

	admin, err := uc.Repository.IsGlobalAdmin(ctx, principalID)
	if err != nil {
		return entities.AccessDecision{}, err
	}
	if admin {
		return entities.AccessDecision{
			IsAdmin:           true,
			CanAccessCampaign: true,
			Reason:            entities.ReasonGlobalAdmin,
			CheckedAt:         checkedAt,
		}, nil
	}

	if brandID != "" {
		brand, err := uc.Repository.GetBrand(ctx, brandID)
		if err != nil && !errors.Is(err, domainerrors.ErrBrandNotFound) {
			return entities.AccessDecision{}, err
		}
		if err == nil && brand.OwnerUserID == principalID {
			return entities.AccessDecision{
				Role:              "brand_owner",
				IsOwner:           true,
				CanAccessCampaign: true,
				Reason:            entities.ReasonBrandOwner,
				CheckedAt:         checkedAt,
			}, nil
		}

		membership, found, err := uc.Repository.GetMembership(ctx, brandID, principalID)
		if err != nil {
			return entities.AccessDecision{}, err
		}
		if found {
			decision, decided, err := uc.decideFromMembership(ctx, membership, campaignID, checkedAt)
			if err != nil {
				return entities.AccessDecision{}, err
			}
			if decided {
				return decision, nil
			}
		}
	}

	if campaignID != "" && uc.Invitations != nil {
		invited, err := uc.Invitations.HasInvitation(ctx, campaignID, principalID)
		if err != nil {
			return entities.AccessDecision{}, err
		}
		if invited {
			return entities.AccessDecision{
				Role:              "creator",
				CanAccessCampaign: true,
				Reason:            entities.ReasonCreatorInvited,
				CheckedAt:         checkedAt,
			}, nil
		}
	}

	logger.Debug("access denied",
		"event", "access_resolved_negative",
		"module", "identity-access/access-service",
		"layer", "application",
		"principal_id", principalID,
		"brand_id", brandID,
		"campaign_id", campaignID,
	)
	return entities.AccessDecision{Reason: entities.ReasonNoAccess, CheckedAt: checkedAt}, nil
}

func (uc ResolveAccessUseCase) decideFromMembership(
	ctx context.Context,
	membership entities.BrandMembership,
	campaignID string,
	checkedAt time.Time,
) (entities.AccessDecision, bool, error) {
	switch membership.Role {
	case entities.RoleAgencyAdmin:
		return entities.AccessDecision{
			Role:              string(membership.Role),
			CanAccessCampaign: true,
			Reason:            entities.ReasonAgencyAdmin,
			CheckedAt:         checkedAt,
		}, true, nil
	case entities.RoleFinance:
		// Finance sees financial scope everywhere in the brand; operational
		// filtering is the caller's concern.
		return entities.AccessDecision{
			Role:              string(membership.Role),
			CanAccessCampaign: true,
			Reason:            entities.ReasonFinanceScope,
			CheckedAt:         checkedAt,
		}, true, nil
	case entities.RoleCampaignManager:
		if campaignID == "" {
			return entities.AccessDecision{
				Role:      string(membership.Role),
				Reason:    entities.ReasonManagerUnassigned,
				CheckedAt: checkedAt,
			}, true, nil
		}
		_, assigned, err := uc.Repository.GetAssignment(ctx, campaignID, membership.UserID)
		if err != nil {
			return entities.AccessDecision{}, false, err
		}
		if assigned {
			return entities.AccessDecision{
				Role:              string(membership.Role),
				CanAccessCampaign: true,
				Reason:            entities.ReasonManagerAssigned,
				CheckedAt:         checkedAt,
			}, true, nil
		}
		return entities.AccessDecision{
			Role:      string(membership.Role),
			Reason:    entities.ReasonManagerUnassigned,
			CheckedAt: checkedAt,
		}, true, nil
	default:
		return entities.AccessDecision{}, false, nil
	}
}
