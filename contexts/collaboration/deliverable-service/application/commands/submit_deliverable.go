package commands

import (
	"context"
	"log/slog"
	"strings"

	application "meridian/contexts/collaboration/deliverable-service/application"
	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	"meridian/contexts/collaboration/deliverable-service/ports"
)

type SubmitDeliverableCommand struct {
	ActorID       string
	CampaignID    string
	BrandID       string
	DeliverableID string
	SubmissionURL string
	Metadata      map[string]string
}

// SubmitDeliverableUseCase appends a creator's upload attempt. Revisions
// re-run the same path and append a fresh submission; nothing overwrites.
type SubmitDeliverableUseCase struct {
	Repository  ports.Repository
	Invitations ports.InvitationChecker
	Campaigns   ports.CampaignChecker
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SubmitDeliverableUseCase) Execute(ctx context.Context, cmd SubmitDeliverableCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	campaignID := strings.TrimSpace(cmd.CampaignID)
	creatorID := strings.TrimSpace(cmd.ActorID)

	accepted, err := uc.Invitations.HasAcceptedInvitation(ctx, campaignID, creatorID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !accepted {
		return entities.Submission{}, domainerrors.ErrNoAcceptedInvitation
	}
	accepting, err := uc.Campaigns.IsAcceptingDeliverables(ctx, campaignID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !accepting {
		return entities.Submission{}, domainerrors.ErrCampaignNotAccepting
	}

	deliverables, err := uc.Repository.ListDeliverables(ctx, campaignID)
	if err != nil {
		return entities.Submission{}, err
	}
	deliverableID := strings.TrimSpace(cmd.DeliverableID)
	known := false
	for _, item := range deliverables {
		if item.DeliverableID == deliverableID {
			known = true
			break
		}
	}
	if !known {
		return entities.Submission{}, domainerrors.ErrDeliverableNotFound
	}

	now := uc.Clock.Now().UTC()
	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	submission := entities.Submission{
		SubmissionID:  submissionID,
		CampaignID:    campaignID,
		DeliverableID: deliverableID,
		CreatorID:     creatorID,
		SubmissionURL: strings.TrimSpace(cmd.SubmissionURL),
		Metadata:      cmd.Metadata,
		SubmittedAt:   now,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	event, err := newEnvelope(eventID, "submission.created", "submission", submission.SubmissionID, now, map[string]any{
		"submission_id":  submission.SubmissionID,
		"campaign_id":    submission.CampaignID,
		"brand_id":       strings.TrimSpace(cmd.BrandID),
		"creator_id":     submission.CreatorID,
		"deliverable_id": submission.DeliverableID,
		"submission_url": submission.SubmissionURL,
	})
	if err != nil {
		return entities.Submission{}, err
	}
	if err := uc.Repository.CreateSubmissionWithOutbox(ctx, submission, event); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("deliverable submitted",
		"event", "submission_created",
		"module", "collaboration/deliverable-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"campaign_id", submission.CampaignID,
		"deliverable_id", submission.DeliverableID,
		"creator_id", submission.CreatorID,
	)
	return submission, nil
}
