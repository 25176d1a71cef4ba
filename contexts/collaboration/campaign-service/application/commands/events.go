package commands

import (
	"encoding/json"
	"time"

	"meridian/contexts/collaboration/campaign-service/ports"
)

const sourceService = "campaign-service"

func newEnvelope(
	eventID string,
	eventType string,
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
		EntityType:    "campaign",
		EntityID:      entityID,
		PartitionKey:  partitionKey,
		Data:          payload,
	}, nil
}
