package postgresadapter

import (
	"encoding/json"
	"time"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
)

type invitationModel struct {
	InvitationID        string  `gorm:"column:invitation_id;primaryKey"`
	CampaignID          string  `gorm:"column:campaign_id;index"`
	BrandID             string  `gorm:"column:brand_id;index"`
	CreatorID           string  `gorm:"column:creator_id;index"`
	Status              string  `gorm:"column:status;index"`
	BasePayout          float64 `gorm:"column:base_payout"`
	OfferedPayout       float64 `gorm:"column:offered_payout"`
	NegotiatedDelta     *float64
	Deliverables        []byte `gorm:"column:deliverables;type:jsonb"`
	TimelineStart       *time.Time
	TimelineEnd         *time.Time
	SpecialRequirements string `gorm:"column:special_requirements"`
	ExpiresAt           *time.Time
	Version             int64 `gorm:"column:version"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	RespondedAt         *time.Time
}

func (invitationModel) TableName() string { return "invitations" }

type trackingLinkModel struct {
	LinkID       string `gorm:"column:link_id;primaryKey"`
	CampaignID   string `gorm:"column:campaign_id;index"`
	CreatorID    string `gorm:"column:creator_id;index"`
	InvitationID string `gorm:"column:invitation_id;uniqueIndex"`
	Code         string `gorm:"column:code;uniqueIndex"`
	URL          string `gorm:"column:url"`
	CreatedAt    time.Time
}

func (trackingLinkModel) TableName() string { return "tracking_links" }

type outboxModel struct {
	OutboxID     string `gorm:"column:outbox_id;primaryKey"`
	EventType    string `gorm:"column:event_type"`
	PartitionKey string `gorm:"column:partition_key"`
	Payload      []byte `gorm:"column:payload;type:jsonb"`
	Status       string `gorm:"column:status;index"`
	RetryCount   int    `gorm:"column:retry_count"`
	CreatedAt    time.Time
	PublishedAt  *time.Time
}

func (outboxModel) TableName() string { return "invitation_outbox" }

func invitationModelFromEntity(item entities.Invitation) (invitationModel, error) {
	deliverables, err := json.Marshal(item.Deliverables)
	if err != nil {
		return invitationModel{}, err
	}
	return invitationModel{
		InvitationID:        item.InvitationID,
		CampaignID:          item.CampaignID,
		BrandID:             item.BrandID,
		CreatorID:           item.CreatorID,
		Status:              string(item.Status),
		BasePayout:          item.BasePayout,
		OfferedPayout:       item.OfferedPayout,
		NegotiatedDelta:     item.NegotiatedDelta,
		Deliverables:        deliverables,
		TimelineStart:       item.TimelineStart,
		TimelineEnd:         item.TimelineEnd,
		SpecialRequirements: item.SpecialRequirements,
		ExpiresAt:           item.ExpiresAt,
		Version:             item.Version,
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
		RespondedAt:         item.RespondedAt,
	}, nil
}

func (m invitationModel) toEntity() (entities.Invitation, error) {
	var deliverables []entities.DeliverableSpec
	if len(m.Deliverables) > 0 {
		if err := json.Unmarshal(m.Deliverables, &deliverables); err != nil {
			return entities.Invitation{}, err
		}
	}
	return entities.Invitation{
		InvitationID:        m.InvitationID,
		CampaignID:          m.CampaignID,
		BrandID:             m.BrandID,
		CreatorID:           m.CreatorID,
		Status:              entities.InvitationStatus(m.Status),
		BasePayout:          m.BasePayout,
		OfferedPayout:       m.OfferedPayout,
		NegotiatedDelta:     m.NegotiatedDelta,
		Deliverables:        deliverables,
		TimelineStart:       m.TimelineStart,
		TimelineEnd:         m.TimelineEnd,
		SpecialRequirements: m.SpecialRequirements,
		ExpiresAt:           m.ExpiresAt,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		RespondedAt:         m.RespondedAt,
	}, nil
}

func trackingLinkModelFromEntity(item entities.TrackingLink) trackingLinkModel {
	return trackingLinkModel{
		LinkID:       item.LinkID,
		CampaignID:   item.CampaignID,
		CreatorID:    item.CreatorID,
		InvitationID: item.InvitationID,
		Code:         item.Code,
		URL:          item.URL,
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m trackingLinkModel) toEntity() entities.TrackingLink {
	return entities.TrackingLink{
		LinkID:       m.LinkID,
		CampaignID:   m.CampaignID,
		CreatorID:    m.CreatorID,
		InvitationID: m.InvitationID,
		Code:         m.Code,
		URL:          m.URL,
		CreatedAt:    m.CreatedAt,
	}
}
