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

type AddMembershipCommand struct {
	ActorID   string
	BrandID   string
	UserID    string
	Role      entities.MembershipRole
	IsDefault bool
}

// AddMembershipUseCase writes or replaces a user's role within a brand.
// Marking the membership default clears the user's previous default brand
// in the same transaction.
type AddMembershipUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc AddMembershipUseCase) Execute(ctx context.Context, cmd AddMembershipCommand) (entities.BrandMembership, error) {
	logger := application.ResolveLogger(uc.Logger)

	membership := entities.BrandMembership{
		BrandID:   strings.TrimSpace(cmd.BrandID),
		UserID:    strings.TrimSpace(cmd.UserID),
		Role:      cmd.Role,
		IsDefault: cmd.IsDefault,
		CreatedAt: uc.Clock.Now().UTC(),
	}
	if !membership.Validate() {
		return entities.BrandMembership{}, domainerrors.ErrInvalidAccessInput
	}
	if err := requireBrandOperator(ctx, uc.Repository, cmd.ActorID, membership.BrandID); err != nil {
		return entities.BrandMembership{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.BrandMembership{}, err
	}
	event, err := newEnvelope(eventID, "access.membership_upserted", "membership", membership.BrandID+"/"+membership.UserID, membership.CreatedAt, map[string]any{
		"brand_id":   membership.BrandID,
		"user_id":    membership.UserID,
		"role":       string(membership.Role),
		"is_default": membership.IsDefault,
	})
	if err != nil {
		return entities.BrandMembership{}, err
	}
	if err := uc.Repository.UpsertMembershipWithOutbox(ctx, membership, event); err != nil {
		return entities.BrandMembership{}, err
	}

	logger.Info("membership upserted",
		"event", "membership_upserted",
		"module", "identity-access/access-service",
		"layer", "application",
		"brand_id", membership.BrandID,
		"user_id", membership.UserID,
		"role", string(membership.Role),
		"is_default", membership.IsDefault,
	)
	return membership, nil
}
