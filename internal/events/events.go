// Package events publishes shard domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	CategoryCreated = "category_created"
	ProductCreated  = "product_created"
	UserCreated     = "user_created"
	UserUpdated     = "user_updated"
	UserDeleted     = "user_deleted"

	headerEventType = "event-type"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Shard      string    `json:"shard"`
	EntityID   uint      `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(shardID, eventType string, entityID uint, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Shard:      shardID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Key groups every event of one entity on one partition.
func (e Event) Key() string {
	return fmt.Sprintf("%s-%d", kind(e.Type), e.EntityID)
}

func kind(eventType string) string {
	switch eventType {
	case CategoryCreated:
		return "category"
	case ProductCreated:
		return "product"
	default:
		return "user"
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka: empty topic")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
	return &Producer{writer: w}, nil
}

func (p *Producer) Publish(ctx context.Context, e Event) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", e.Type, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func newMessage(e Event) (kafka.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.Key()),
		Value: data,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}, nil
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
