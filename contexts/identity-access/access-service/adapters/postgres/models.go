package postgresadapter

import (
	"time"

	"meridian/contexts/identity-access/access-service/domain/entities"
)

type brandModel struct {
	BrandID     string `gorm:"column:brand_id;primaryKey"`
	OwnerUserID string `gorm:"column:owner_user_id;index"`
	Name        string `gorm:"column:name"`
}

func (brandModel) TableName() string { return "brands" }

type globalAdminModel struct {
	UserID string `gorm:"column:user_id;primaryKey"`
}

func (globalAdminModel) TableName() string { return "global_admins" }

type membershipModel struct {
	BrandID   string    `gorm:"column:brand_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey;index"`
	Role      string    `gorm:"column:role"`
	IsDefault bool      `gorm:"column:is_default"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (membershipModel) TableName() string { return "brand_memberships" }

type assignmentModel struct {
	CampaignID string    `gorm:"column:campaign_id;primaryKey"`
	UserID     string    `gorm:"column:user_id;primaryKey;index"`
	AssignedBy string    `gorm:"column:assigned_by"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (assignmentModel) TableName() string { return "manager_assignments" }

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

func (outboxModel) TableName() string { return "access_outbox" }

func (m brandModel) toEntity() entities.Brand {
	return entities.Brand{BrandID: m.BrandID, OwnerUserID: m.OwnerUserID, Name: m.Name}
}

func membershipModelFromEntity(item entities.BrandMembership) membershipModel {
	return membershipModel{
		BrandID:   item.BrandID,
		UserID:    item.UserID,
		Role:      string(item.Role),
		IsDefault: item.IsDefault,
		CreatedAt: item.CreatedAt.UTC(),
	}
}

func (m membershipModel) toEntity() entities.BrandMembership {
	return entities.BrandMembership{
		BrandID:   m.BrandID,
		UserID:    m.UserID,
		Role:      entities.MembershipRole(m.Role),
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
	}
}

func assignmentModelFromEntity(item entities.ManagerAssignment) assignmentModel {
	return assignmentModel{
		CampaignID: item.CampaignID,
		UserID:     item.UserID,
		AssignedBy: item.AssignedBy,
		CreatedAt:  item.CreatedAt.UTC(),
	}
}

func (m assignmentModel) toEntity() entities.ManagerAssignment {
	return entities.ManagerAssignment{
		CampaignID: m.CampaignID,
		UserID:     m.UserID,
		AssignedBy: m.AssignedBy,
		CreatedAt:  m.CreatedAt,
	}
}
