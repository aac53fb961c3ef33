package events

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewKafkaMirror builds the optional Kafka publisher that mirrors snapshot
// events for external audit consumers. Returns nil when no brokers are
// configured.
func NewKafkaMirror(brokers []string, logger *slog.Logger) (message.Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return publisher, nil
}
