package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/invitation-service/domain/errors"
	"meridian/contexts/collaboration/invitation-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateInvitationWithOutbox(ctx context.Context, invitation entities.Invitation, event ports.EventEnvelope) error {
	row, err := invitationModelFromEntity(invitation)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateInvitation
			}
			return err
		}
		return appendOutbox(tx, event)
	})
}

// UpdateInvitationIf is the optimistic-concurrency write: the row update is
// conditioned on the stored version still matching what the caller read, so
// a racing writer surfaces as ErrTransitionConflict instead of a lost
// update. Guarding on status alone would miss same-state transitions like
// counter-offer over counter-offer.
func (r *Repository) UpdateInvitationIf(
	ctx context.Context,
	invitation entities.Invitation,
	expectedVersion int64,
	events []ports.EventEnvelope,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.guardedUpdate(tx, invitation, expectedVersion); err != nil {
			return err
		}
		for _, event := range events {
			if err := appendOutbox(tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) AcceptInvitationWithLink(
	ctx context.Context,
	invitation entities.Invitation,
	expectedVersion int64,
	link entities.TrackingLink,
	events []ports.EventEnvelope,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.guardedUpdate(tx, invitation, expectedVersion); err != nil {
			return err
		}
		linkRow := trackingLinkModelFromEntity(link)
		if err := tx.Create(&linkRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrTransitionConflict
			}
			return err
		}
		for _, event := range events {
			if err := appendOutbox(tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) guardedUpdate(tx *gorm.DB, invitation entities.Invitation, expectedVersion int64) error {
	deliverables, err := json.Marshal(invitation.Deliverables)
	if err != nil {
		return err
	}
	result := tx.Model(&invitationModel{}).
		Where("invitation_id = ? AND version = ?", invitation.InvitationID, expectedVersion).
		Updates(map[string]any{
			"status":           string(invitation.Status),
			"offered_payout":   invitation.OfferedPayout,
			"negotiated_delta": invitation.NegotiatedDelta,
			"deliverables":     deliverables,
			"version":          invitation.Version,
			"updated_at":       invitation.UpdatedAt.UTC(),
			"responded_at":     invitation.RespondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&invitationModel{}).
			Where("invitation_id = ?", invitation.InvitationID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domainerrors.ErrInvitationNotFound
		}
		return domainerrors.ErrTransitionConflict
	}
	return nil
}

func (r *Repository) GetInvitation(ctx context.Context, invitationID string) (entities.Invitation, error) {
	var row invitationModel
	err := r.db.WithContext(ctx).
		Where("invitation_id = ?", strings.TrimSpace(invitationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Invitation{}, domainerrors.ErrInvitationNotFound
		}
		return entities.Invitation{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetInvitationForCreator(ctx context.Context, campaignID, creatorID string) (entities.Invitation, bool, error) {
	var row invitationModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND creator_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(creatorID)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Invitation{}, false, nil
		}
		return entities.Invitation{}, false, err
	}
	item, err := row.toEntity()
	if err != nil {
		return entities.Invitation{}, false, err
	}
	return item, true, nil
}

func (r *Repository) ListInvitations(ctx context.Context, filter ports.InvitationFilter) ([]entities.Invitation, error) {
	tx := r.db.WithContext(ctx).Model(&invitationModel{})
	if filter.BrandID != "" {
		tx = tx.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CampaignID != "" {
		tx = tx.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.CreatorID != "" {
		tx = tx.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []invitationModel
	if err := tx.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Invitation, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) HasLiveInvitation(ctx context.Context, campaignID, creatorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&invitationModel{}).
		Where("campaign_id = ? AND creator_id = ? AND status IN ?",
			strings.TrimSpace(campaignID),
			strings.TrimSpace(creatorID),
			[]string{
				string(entities.InvitationStatusPending),
				string(entities.InvitationStatusNegotiating),
				string(entities.InvitationStatusAccepted),
			}).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) HasInvitation(ctx context.Context, campaignID, creatorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&invitationModel{}).
		Where("campaign_id = ? AND creator_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(creatorID)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) HasAcceptedInvitation(ctx context.Context, campaignID, creatorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&invitationModel{}).
		Where("campaign_id = ? AND creator_id = ? AND status = ?",
			strings.TrimSpace(campaignID),
			strings.TrimSpace(creatorID),
			string(entities.InvitationStatusAccepted)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) ListExpirablePending(ctx context.Context, now time.Time, limit int) ([]entities.Invitation, error) {
	var rows []invitationModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?",
			string(entities.InvitationStatusPending), now.UTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Invitation, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ListTrackingLinks(ctx context.Context, campaignID, creatorID string) ([]entities.TrackingLink, error) {
	tx := r.db.WithContext(ctx).Model(&trackingLinkModel{})
	if campaignID != "" {
		tx = tx.Where("campaign_id = ?", campaignID)
	}
	if creatorID != "" {
		tx = tx.Where("creator_id = ?", creatorID)
	}

	var rows []trackingLinkModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.TrackingLink, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			Status:       row.Status,
			RetryCount:   row.RetryCount,
			CreatedAt:    row.CreatedAt,
			PublishedAt:  row.PublishedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	at := publishedAt.UTC()
	return r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": &at,
		}).
		Error
}

func appendOutbox(tx *gorm.DB, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	return tx.Create(&row).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
