package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ci-research/learninghub-service/internal/models"
)

// TopicSnapshotChanged carries one event per committed mutation.
const TopicSnapshotChanged = "snapshot.changed"

// SnapshotChanged announces that a mutation committed. It carries a copy of
// the sync payload taken at commit time, so the push that consumes it is
// unaffected by later mutations.
type SnapshotChanged struct {
	Operation  string             `json:"operation"`
	OccurredAt time.Time          `json:"occurred_at"`
	Payload    models.SyncPayload `json:"payload"`
}

// EventPublisher is the mutation-side surface of the event bus.
type EventPublisher interface {
	PublishSnapshotChanged(event SnapshotChanged) error
	Close() error
}

func marshalEvent(event SnapshotChanged) (*message.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("operation", event.Operation)
	return msg, nil
}

// UnmarshalSnapshotChanged decodes a bus message back into the event.
func UnmarshalSnapshotChanged(msg *message.Message) (SnapshotChanged, error) {
	var event SnapshotChanged
	err := json.Unmarshal(msg.Payload, &event)
	return event, err
}
