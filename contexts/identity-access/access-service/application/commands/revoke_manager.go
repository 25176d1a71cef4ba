package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/identity-access/access-service/application"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
)

type RevokeManagerCommand struct {
	ActorID    string
	BrandID    string
	CampaignID string
	UserID     string
}

type RevokeManagerUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc RevokeManagerUseCase) Execute(ctx context.Context, cmd RevokeManagerCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	brandID := strings.TrimSpace(cmd.BrandID)
	campaignID := strings.TrimSpace(cmd.CampaignID)
	userID := strings.TrimSpace(cmd.UserID)
	if brandID == "" || campaignID == "" || userID == "" {
		return domainerrors.ErrInvalidAccessInput
	}
	if err := requireBrandOperator(ctx, uc.Repository, cmd.ActorID, brandID); err != nil {
		return err
	}

	if _, exists, err := uc.Repository.GetAssignment(ctx, campaignID, userID); err != nil {
		return err
	} else if !exists {
		return domainerrors.ErrAssignmentNotFound
	}

	now := uc.Clock.Now().UTC()
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	event, err := newEnvelope(eventID, "access.manager_revoked", "assignment", campaignID+"/"+userID, now, map[string]any{
		"campaign_id": campaignID,
		"brand_id":    brandID,
		"user_id":     userID,
		"revoked_by":  strings.TrimSpace(cmd.ActorID),
	})
	if err != nil {
		return err
	}
	if err := uc.Repository.DeleteAssignmentWithOutbox(ctx, campaignID, userID, event); err != nil {
		return err
	}

	logger.Info("manager revoked",
		"event", "manager_revoked",
		"module", "identity-access/access-service",
		"layer", "application",
		"campaign_id", campaignID,
		"brand_id", brandID,
		"user_id", userID,
	)
	return nil
}
