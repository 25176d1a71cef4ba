package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	domainerrors "meridian/contexts/collaboration/deliverable-service/domain/errors"
	"meridian/contexts/collaboration/deliverable-service/ports"
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

func (r *Repository) CreateDeliverables(ctx context.Context, deliverables []entities.Deliverable) error {
	rows := make([]deliverableModel, 0, len(deliverables))
	for _, item := range deliverables {
		rows = append(rows, deliverableModelFromEntity(item))
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *Repository) CreateSubmissionWithOutbox(ctx context.Context, submission entities.Submission, event ports.EventEnvelope) error {
	row, err := submissionModelFromEntity(submission)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return appendOutbox(tx, event)
	})
}

func (r *Repository) CreateReviewWithOutbox(ctx context.Context, review entities.Review, events []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&submissionModel{}).
			Where("submission_id = ?", review.SubmissionID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domainerrors.ErrSubmissionNotFound
		}
		row := reviewModelFromEntity(review)
		if err := tx.Create(&row).Error; err != nil {
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

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListDeliverables(ctx context.Context, campaignID string) ([]entities.Deliverable, error) {
	var rows []deliverableModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("deliverable_index ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Deliverable, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListSubmissions(ctx context.Context, campaignID, creatorID string) ([]entities.Submission, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{})
	if campaignID != "" {
		tx = tx.Where("campaign_id = ?", campaignID)
	}
	if creatorID != "" {
		tx = tx.Where("creator_id = ?", creatorID)
	}

	var rows []submissionModel
	if err := tx.Order("submitted_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return submissionsToEntities(rows)
}

func (r *Repository) ListSubmissionsForDeliverable(ctx context.Context, deliverableID, creatorID string) ([]entities.Submission, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{}).
		Where("deliverable_id = ?", strings.TrimSpace(deliverableID))
	if creatorID != "" {
		tx = tx.Where("creator_id = ?", creatorID)
	}

	var rows []submissionModel
	if err := tx.Order("submitted_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return submissionsToEntities(rows)
}

func (r *Repository) ListReviews(ctx context.Context, submissionID string) ([]entities.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Review, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListReviewsForCreator(ctx context.Context, campaignID, creatorID string) (map[string][]entities.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Joins("JOIN submissions ON submissions.submission_id = reviews.submission_id").
		Where("submissions.campaign_id = ? AND submissions.creator_id = ?",
			strings.TrimSpace(campaignID), strings.TrimSpace(creatorID)).
		Order("reviews.created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[string][]entities.Review)
	for _, row := range rows {
		result[row.SubmissionID] = append(result[row.SubmissionID], row.toEntity())
	}
	return result, nil
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

func submissionsToEntities(rows []submissionModel) ([]entities.Submission, error) {
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
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
