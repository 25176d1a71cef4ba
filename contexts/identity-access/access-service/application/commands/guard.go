package commands

import (
	"context"
	"errors"
	"strings"

	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
)

// requireBrandOperator admits global admins, the brand owner, and
// agency_admin members. Everyone else cannot mutate access records.
func requireBrandOperator(ctx context.Context, repo ports.Repository, actorID, brandID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return domainerrors.ErrUnauthorizedActor
	}

	admin, err := repo.IsGlobalAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}

	brand, err := repo.GetBrand(ctx, brandID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrBrandNotFound) {
			return domainerrors.ErrUnauthorizedActor
		}
		return err
	}
	if brand.OwnerUserID == actorID {
		return nil
	}

	membership, found, err := repo.GetMembership(ctx, brandID, actorID)
	if err != nil {
		return err
	}
	if found && membership.Role == entities.RoleAgencyAdmin {
		return nil
	}
	return domainerrors.ErrUnauthorizedActor
}
