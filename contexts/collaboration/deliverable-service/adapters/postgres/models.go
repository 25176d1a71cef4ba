package postgresadapter

import (
	"encoding/json"
	"time"

	"meridian/contexts/collaboration/deliverable-service/domain/entities"
)

type deliverableModel struct {
	DeliverableID    string    `gorm:"column:deliverable_id;primaryKey"`
	CampaignID       string    `gorm:"column:campaign_id;index"`
	DeliverableIndex int       `gorm:"column:deliverable_index"`
	Title            string    `gorm:"column:title"`
	Type             string    `gorm:"column:type"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (deliverableModel) TableName() string { return "deliverables" }

type submissionModel struct {
	SubmissionID  string    `gorm:"column:submission_id;primaryKey"`
	CampaignID    string    `gorm:"column:campaign_id;index"`
	DeliverableID string    `gorm:"column:deliverable_id;index"`
	CreatorID     string    `gorm:"column:creator_id;index"`
	SubmissionURL string    `gorm:"column:submission_url"`
	Metadata      []byte    `gorm:"column:metadata;type:jsonb"`
	SubmittedAt   time.Time `gorm:"column:submitted_at"`
}

func (submissionModel) TableName() string { return "submissions" }

type reviewModel struct {
	ReviewID     string    `gorm:"column:review_id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id;index"`
	Action       string    `gorm:"column:action"`
	Feedback     string    `gorm:"column:feedback"`
	ReviewerID   string    `gorm:"column:reviewer_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status;index"`
	RetryCount   int        `gorm:"column:retry_count"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "deliverable_outbox" }

func deliverableModelFromEntity(item entities.Deliverable) deliverableModel {
	return deliverableModel{
		DeliverableID:    item.DeliverableID,
		CampaignID:       item.CampaignID,
		DeliverableIndex: item.DeliverableIndex,
		Title:            item.Title,
		Type:             item.Type,
		CreatedAt:        item.CreatedAt.UTC(),
	}
}

func (m deliverableModel) toEntity() entities.Deliverable {
	return entities.Deliverable{
		DeliverableID:    m.DeliverableID,
		CampaignID:       m.CampaignID,
		DeliverableIndex: m.DeliverableIndex,
		Title:            m.Title,
		Type:             m.Type,
		CreatedAt:        m.CreatedAt,
	}
}

func submissionModelFromEntity(item entities.Submission) (submissionModel, error) {
	metadata, err := json.Marshal(item.Metadata)
	if err != nil {
		return submissionModel{}, err
	}
	return submissionModel{
		SubmissionID:  item.SubmissionID,
		CampaignID:    item.CampaignID,
		DeliverableID: item.DeliverableID,
		CreatorID:     item.CreatorID,
		SubmissionURL: item.SubmissionURL,
		Metadata:      metadata,
		SubmittedAt:   item.SubmittedAt.UTC(),
	}, nil
}

func (m submissionModel) toEntity() (entities.Submission, error) {
	var metadata map[string]string
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return entities.Submission{}, err
		}
	}
	return entities.Submission{
		SubmissionID:  m.SubmissionID,
		CampaignID:    m.CampaignID,
		DeliverableID: m.DeliverableID,
		CreatorID:     m.CreatorID,
		SubmissionURL: m.SubmissionURL,
		Metadata:      metadata,
		SubmittedAt:   m.SubmittedAt,
	}, nil
}

func reviewModelFromEntity(item entities.Review) reviewModel {
	return reviewModel{
		ReviewID:     item.ReviewID,
		SubmissionID: item.SubmissionID,
		Action:       string(item.Action),
		Feedback:     item.Feedback,
		ReviewerID:   item.ReviewerID,
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m reviewModel) toEntity() entities.Review {
	return entities.Review{
		ReviewID:     m.ReviewID,
		SubmissionID: m.SubmissionID,
		Action:       entities.ReviewAction(m.Action),
		Feedback:     m.Feedback,
		ReviewerID:   m.ReviewerID,
		CreatedAt:    m.CreatedAt,
	}
}
