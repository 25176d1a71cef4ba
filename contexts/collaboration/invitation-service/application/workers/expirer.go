package workers

import (
	"context"
	"errors"
	"log/slog"

	application "meridian/contexts/collaboration/invitation-service/application"
	"meridian/contexts/collaboration/invitation-service/application/commands"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
)

// InvitationExpirer sweeps pending invitations whose expiry has passed.
// Conflicts and invalid transitions are expected here: a creator may respond
// between the list and the expire attempt, and that response wins.
type InvitationExpirer struct {
	Invitations ports.Repository
	Expire      commands.ExpireUseCase
	Clock       ports.Clock
	BatchSize   int
	Logger      *slog.Logger
}

func (w InvitationExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 50
	}

	now := w.Clock.Now().UTC()
	expirable, err := w.Invitations.ListExpirablePending(ctx, now, limit)
	if err != nil {
		logger.Error("expirer list failed",
			"event", "invitation_expirer_list_failed",
			"module", "collaboration/invitation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	expired := 0
	for _, invitation := range expirable {
		if _, err := w.Expire.Execute(ctx, commands.ExpireCommand{InvitationID: invitation.InvitationID}); err != nil {
			if errors.Is(err, domainerrors.ErrTransitionConflict) ||
				errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
				continue
			}
			logger.Error("expirer transition failed",
				"event", "invitation_expirer_failed",
				"module", "collaboration/invitation-service",
				"layer", "worker",
				"invitation_id", invitation.InvitationID,
				"error", err.Error(),
			)
			return err
		}
		expired++
	}

	if expired > 0 {
		logger.Info("expirer cycle completed",
			"event", "invitation_expirer_completed",
			"module", "collaboration/invitation-service",
			"layer", "worker",
			"expired_count", expired,
		)
	}
	return nil
}
