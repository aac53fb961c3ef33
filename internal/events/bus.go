package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is the in-process event bus. Mutations publish snapshot-changed
// events; the sync runner subscribes. An optional secondary publisher
// (Kafka) mirrors every event for external consumers.
type Bus struct {
	pubSub *gochannel.GoChannel
	mirror message.Publisher
	logger *slog.Logger
}

// NewBus creates a gochannel-backed bus. mirror may be nil.
func NewBus(logger *slog.Logger, mirror message.Publisher) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &Bus{
		pubSub: pubSub,
		mirror: mirror,
		logger: logger,
	}
}

func (b *Bus) PublishSnapshotChanged(event SnapshotChanged) error {
	msg, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("marshal snapshot event: %w", err)
	}

	if err := b.pubSub.Publish(TopicSnapshotChanged, msg); err != nil {
		return fmt.Errorf("publish snapshot event: %w", err)
	}

	if b.mirror != nil {
		// Mirror failures must not fail the mutation.
		mirrorMsg := msg.Copy()
		if err := b.mirror.Publish(TopicSnapshotChanged, mirrorMsg); err != nil {
			b.logger.Error("failed to mirror snapshot event", "error", err, "operation", event.Operation)
		}
	}

	return nil
}

// Subscribe returns the snapshot-changed message stream.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, TopicSnapshotChanged)
}

func (b *Bus) Close() error {
	if b.mirror != nil {
		if err := b.mirror.Close(); err != nil {
			b.logger.Error("failed to close mirror publisher", "error", err)
		}
	}
	return b.pubSub.Close()
}
