package queries

import (
	"context"
	"log/slog"
	"strings"

	"meridian/contexts/identity-access/access-service/domain/entities"
	"meridian/contexts/identity-access/access-service/ports"
)

type ListMembershipsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc ListMembershipsUseCase) ListForBrand(ctx context.Context, brandID string) ([]entities.BrandMembership, error) {
	return uc.Repository.ListMemberships(ctx, strings.TrimSpace(brandID))
}

func (uc ListMembershipsUseCase) ListForUser(ctx context.Context, userID string) ([]entities.BrandMembership, error) {
	return uc.Repository.ListMembershipsForUser(ctx, strings.TrimSpace(userID))
}

// DefaultBrand returns the brand the user's console should open on: the
// membership flagged as default, or the oldest one when none is flagged.
func (uc ListMembershipsUseCase) DefaultBrand(ctx context.Context, userID string) (string, bool, error) {
	memberships, err := uc.Repository.ListMembershipsForUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return "", false, err
	}
	if len(memberships) == 0 {
		return "", false, nil
	}
	oldest := memberships[0]
	for _, membership := range memberships {
		if membership.IsDefault {
			return membership.BrandID, true, nil
		}
		if membership.CreatedAt.Before(oldest.CreatedAt) {
			oldest = membership
		}
	}
	return oldest.BrandID, true, nil
}
