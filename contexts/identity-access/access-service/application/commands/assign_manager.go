package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/identity-access/access-service/application"
	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
)

type AssignManagerCommand struct {
	ActorID    string
	BrandID    string
	CampaignID string
	UserID     string
}

// AssignManagerUseCase scopes a campaign_manager to one campaign. The pair
// is idempotent: assigning twice returns the existing assignment quietly.
type AssignManagerUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc AssignManagerUseCase) Execute(ctx context.Context, cmd AssignManagerCommand) (entities.ManagerAssignment, error) {
	logger := application.ResolveLogger(uc.Logger)

	brandID := strings.TrimSpace(cmd.BrandID)
	campaignID := strings.TrimSpace(cmd.CampaignID)
	userID := strings.TrimSpace(cmd.UserID)
	if brandID == "" || campaignID == "" || userID == "" {
		return entities.ManagerAssignment{}, domainerrors.ErrInvalidAccessInput
	}
	if err := requireBrandOperator(ctx, uc.Repository, cmd.ActorID, brandID); err != nil {
		return entities.ManagerAssignment{}, err
	}

	membership, found, err := uc.Repository.GetMembership(ctx, brandID, userID)
	if err != nil {
		return entities.ManagerAssignment{}, err
	}
	if !found || membership.Role != entities.RoleCampaignManager {
		return entities.ManagerAssignment{}, domainerrors.ErrManagerRoleRequired
	}

	if existing, exists, err := uc.Repository.GetAssignment(ctx, campaignID, userID); err != nil {
		return entities.ManagerAssignment{}, err
	} else if exists {
		return existing, nil
	}

	now := uc.Clock.Now().UTC()
	assignment := entities.ManagerAssignment{
		CampaignID: campaignID,
		UserID:     userID,
		AssignedBy: strings.TrimSpace(cmd.ActorID),
		CreatedAt:  now,
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ManagerAssignment{}, err
	}
	event, err := newEnvelope(eventID, "access.manager_assigned", "assignment", campaignID+"/"+userID, now, map[string]any{
		"campaign_id": campaignID,
		"brand_id":    brandID,
		"user_id":     userID,
		"assigned_by": assignment.AssignedBy,
	})
	if err != nil {
		return entities.ManagerAssignment{}, err
	}
	inserted, err := uc.Repository.CreateAssignmentWithOutbox(ctx, assignment, event)
	if err != nil {
		return entities.ManagerAssignment{}, err
	}
	if !inserted {
		// Lost the race to a concurrent assign; the stored row wins.
		existing, _, err := uc.Repository.GetAssignment(ctx, campaignID, userID)
		return existing, err
	}

	logger.Info("manager assigned",
		"event", "manager_assigned",
		"module", "identity-access/access-service",
		"layer", "application",
		"campaign_id", campaignID,
		"brand_id", brandID,
		"user_id", userID,
	)
	return assignment, nil
}
