package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, eventType EventType, payload interface{}) error
	Close() error
}

// WatermillPublisher implements EventPublisher on top of a Watermill
// message.Publisher: Kafka when brokers are configured, an in-process
// gochannel pub/sub otherwise.
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewPublisher creates an event publisher according to the config.
func NewPublisher(config PublisherConfig) (*WatermillPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	var publisher message.Publisher
	if len(config.KafkaBrokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   config.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		publisher = kafkaPublisher
	} else {
		publisher = gochannel.NewGoChannel(gochannel.Config{}, logger)
	}

	return &WatermillPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// Publish wraps the payload in an Event envelope and publishes it.
func (p *WatermillPublisher) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	event := Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    "quiz-service",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher is an in-memory implementation for testing
type MockEventPublisher struct {
	Events []Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make([]Event, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	m.Events = append(m.Events, Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    "quiz-service",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}
