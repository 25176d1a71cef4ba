package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"meridian/contexts/identity-access/access-service/domain/entities"
	domainerrors "meridian/contexts/identity-access/access-service/domain/errors"
	"meridian/contexts/identity-access/access-service/ports"
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

func (r *Repository) GetBrand(ctx context.Context, brandID string) (entities.Brand, error) {
	var row brandModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Brand{}, domainerrors.ErrBrandNotFound
		}
		return entities.Brand{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) IsGlobalAdmin(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&globalAdminModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) GetMembership(ctx context.Context, brandID, userID string) (entities.BrandMembership, bool, error) {
	var row membershipModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND user_id = ?", strings.TrimSpace(brandID), strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BrandMembership{}, false, nil
		}
		return entities.BrandMembership{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListMemberships(ctx context.Context, brandID string) ([]entities.BrandMembership, error) {
	var rows []membershipModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return membershipsToEntities(rows), nil
}

func (r *Repository) ListMembershipsForUser(ctx context.Context, userID string) ([]entities.BrandMembership, error) {
	var rows []membershipModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return membershipsToEntities(rows), nil
}

func (r *Repository) GetAssignment(ctx context.Context, campaignID, userID string) (entities.ManagerAssignment, bool, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ManagerAssignment{}, false, nil
		}
		return entities.ManagerAssignment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListAssignments(ctx context.Context, campaignID string) ([]entities.ManagerAssignment, error) {
	var rows []assignmentModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ManagerAssignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateAssignmentWithOutbox(ctx context.Context, assignment entities.ManagerAssignment, event ports.EventEnvelope) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := assignmentModelFromEntity(assignment)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil
			}
			return err
		}
		inserted = true
		return appendOutbox(tx, event)
	})
	return inserted, err
}

func (r *Repository) DeleteAssignmentWithOutbox(ctx context.Context, campaignID, userID string, event ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("campaign_id = ? AND user_id = ?", campaignID, userID).Delete(&assignmentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrAssignmentNotFound
		}
		return appendOutbox(tx, event)
	})
}

func (r *Repository) UpsertMembershipWithOutbox(ctx context.Context, membership entities.BrandMembership, event ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if membership.IsDefault {
			if err := tx.Model(&membershipModel{}).
				Where("user_id = ? AND is_default = ?", membership.UserID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		row := membershipModelFromEntity(membership)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return appendOutbox(tx, event)
	})
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

func membershipsToEntities(rows []membershipModel) []entities.BrandMembership {
	items := make([]entities.BrandMembership, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
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
