package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/collaboration/campaign-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/campaign-service/domain/errors"
	"meridian/contexts/collaboration/campaign-service/ports"
	"meridian/internal/shared/outbox"

	"github.com/google/uuid"
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

func (r *Repository) CreateCampaignWithOutbox(ctx context.Context, campaign entities.Campaign, event ports.EventEnvelope) error {
	row := campaignModelFromEntity(campaign)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return appendOutbox(tx, event)
	})
}

func (r *Repository) UpdateCampaignStatus(ctx context.Context, campaign entities.Campaign, history entities.StateHistory, event ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := campaignModelFromEntity(campaign)
		result := tx.Model(&campaignModel{}).
			Where("campaign_id = ?", campaign.CampaignID).
			Updates(map[string]any{
				"status":       row.Status,
				"updated_at":   row.UpdatedAt,
				"launched_at":  row.LaunchedAt,
				"completed_at": row.CompletedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCampaignNotFound
		}
		historyRow := stateHistoryModelFromEntity(history)
		if err := tx.Create(&historyRow).Error; err != nil {
			return err
		}
		return appendOutbox(tx, event)
	})
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.BrandID != "" {
		tx = tx.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []campaignModel
	if err := tx.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListStateHistory(ctx context.Context, campaignID string) ([]entities.StateHistory, error) {
	var rows []stateHistoryModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.StateHistory, 0, len(rows))
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
