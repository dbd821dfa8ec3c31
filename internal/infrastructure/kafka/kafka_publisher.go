package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DefaultKafkaPublisher struct {
	writer messageWriter
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(ctx, km...)
}

// PublishCustomerNotification writes one customer message keyed by recipient, so
// messages for the same customer stay ordered.
func (k *DefaultKafkaPublisher) PublishCustomerNotification(ctx context.Context, topic string, event CustomerNotificationEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal customer notification: %w", err)
	}

	return k.Publish(ctx, topic, domain.Message{Key: []byte(event.Email), Value: v})
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

var _ domain.PublisherPort = (*DefaultKafkaPublisher)(nil)
