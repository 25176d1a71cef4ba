package outbox

import "time"

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Message is an outbox row persisted inside the same transaction as the
// state change it announces. Worker relays read pending rows and publish
// them to the event bus.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	Status       string
	RetryCount   int
	CreatedAt    time.Time
	PublishedAt  *time.Time
}
