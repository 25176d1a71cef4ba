package postgresadapter

import (
	"time"

	"meridian/contexts/collaboration/campaign-service/domain/entities"
)

type campaignModel struct {
	CampaignID     string     `gorm:"column:campaign_id;primaryKey"`
	BrandID        string     `gorm:"column:brand_id;index"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Status         string     `gorm:"column:status;index"`
	BudgetTotal    float64    `gorm:"column:budget_total"`
	BudgetReserved float64    `gorm:"column:budget_reserved"`
	BudgetSpent    float64    `gorm:"column:budget_spent"`
	TimelineStart  *time.Time `gorm:"column:timeline_start"`
	TimelineEnd    *time.Time `gorm:"column:timeline_end"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	LaunchedAt     *time.Time `gorm:"column:launched_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type stateHistoryModel struct {
	HistoryID    string    `gorm:"column:history_id;primaryKey"`
	CampaignID   string    `gorm:"column:campaign_id;index"`
	FromStatus   string    `gorm:"column:from_status"`
	ToStatus     string    `gorm:"column:to_status"`
	ChangedBy    string    `gorm:"column:changed_by"`
	ChangeReason string    `gorm:"column:change_reason"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (stateHistoryModel) TableName() string { return "campaign_state_history" }

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

func (outboxModel) TableName() string { return "campaign_outbox" }

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:     item.CampaignID,
		BrandID:        item.BrandID,
		Title:          item.Title,
		Description:    item.Description,
		Status:         string(item.Status),
		BudgetTotal:    item.BudgetTotal,
		BudgetReserved: item.BudgetReserved,
		BudgetSpent:    item.BudgetSpent,
		TimelineStart:  item.TimelineStart,
		TimelineEnd:    item.TimelineEnd,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
		LaunchedAt:     item.LaunchedAt,
		CompletedAt:    item.CompletedAt,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:     m.CampaignID,
		BrandID:        m.BrandID,
		Title:          m.Title,
		Description:    m.Description,
		Status:         entities.CampaignStatus(m.Status),
		BudgetTotal:    m.BudgetTotal,
		BudgetReserved: m.BudgetReserved,
		BudgetSpent:    m.BudgetSpent,
		TimelineStart:  m.TimelineStart,
		TimelineEnd:    m.TimelineEnd,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		LaunchedAt:     m.LaunchedAt,
		CompletedAt:    m.CompletedAt,
	}
}

func stateHistoryModelFromEntity(item entities.StateHistory) stateHistoryModel {
	return stateHistoryModel{
		HistoryID:    item.HistoryID,
		CampaignID:   item.CampaignID,
		FromStatus:   string(item.FromStatus),
		ToStatus:     string(item.ToStatus),
		ChangedBy:    item.ChangedBy,
		ChangeReason: item.ChangeReason,
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m stateHistoryModel) toEntity() entities.StateHistory {
	return entities.StateHistory{
		HistoryID:    m.HistoryID,
		CampaignID:   m.CampaignID,
		FromStatus:   entities.CampaignStatus(m.FromStatus),
		ToStatus:     entities.CampaignStatus(m.ToStatus),
		ChangedBy:    m.ChangedBy,
		ChangeReason: m.ChangeReason,
		CreatedAt:    m.CreatedAt,
	}
}
