package commands

import (
	"encoding/json"
	"time"

	"meridian/contexts/collaboration/invitation-service/domain/entities"
	"meridian/contexts/collaboration/invitation-service/ports"
)

const sourceService = "invitation-service"

func newInvitationEnvelope(
	eventID string,
	eventType string,
	invitation entities.Invitation,
	occurredAt time.Time,
) (ports.EventEnvelope, error) {
	return newEnvelope(eventID, eventType, "invitation", invitation.InvitationID, occurredAt, map[string]any{
		"invitation_id":    invitation.InvitationID,
		"campaign_id":      invitation.CampaignID,
		"brand_id":         invitation.BrandID,
		"creator_id":       invitation.CreatorID,
		"status":           string(invitation.Status),
		"offered_payout":   invitation.OfferedPayout,
		"negotiated_delta": invitation.NegotiatedDelta,
	})
}

// Negotiation moves get their own entity type so the change feed can treat
// them as implicitly invalidating invitations as well.
func newNegotiationEnvelope(
	eventID string,
	eventType string,
	invitation entities.Invitation,
	occurredAt time.Time,
) (ports.EventEnvelope, error) {
	return newEnvelope(eventID, eventType, "negotiation", invitation.InvitationID, occurredAt, map[string]any{
		"invitation_id":    invitation.InvitationID,
		"campaign_id":      invitation.CampaignID,
		"brand_id":         invitation.BrandID,
		"creator_id":       invitation.CreatorID,
		"offered_payout":   invitation.OfferedPayout,
		"negotiated_delta": invitation.NegotiatedDelta,
	})
}

func newTrackingLinkEnvelope(
	eventID string,
	link entities.TrackingLink,
	brandID string,
	occurredAt time.Time,
) (ports.EventEnvelope, error) {
	return newEnvelope(eventID, "tracking_link.created", "tracking_link", link.LinkID, occurredAt, map[string]any{
		"link_id":       link.LinkID,
		"invitation_id": link.InvitationID,
		"campaign_id":   link.CampaignID,
		"brand_id":      brandID,
		"creator_id":    link.CreatorID,
		"code":          link.Code,
	})
}

func newEnvelope(
	eventID string,
	eventType string,
	entityType string,
	entityID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	partitionKey, _ := data["campaign_id"].(string)
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: sourceService,
		OccurredAt:    occurredAt.UTC(),
		TraceID:       eventID,
		SchemaVersion: 1,
		EntityType:    entityType,
		EntityID:      entityID,
		PartitionKey:  partitionKey,
		Data:          payload,
	}, nil
}
