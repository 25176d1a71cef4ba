package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape carried through the outbox, the
// in-process bus, and the change feed router.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion int             `json:"schema_version"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

// ScopeFields are the routing ids every domain event payload carries so the
// change feed router can fan an event out without interpreting the rest of
// the payload.
type ScopeFields struct {
	CampaignID string `json:"campaign_id,omitempty"`
	BrandID    string `json:"brand_id,omitempty"`
	CreatorID  string `json:"creator_id,omitempty"`
}
