package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	publisher "github.com/LavaJover/shvark-payment-service/internal/infrastructure/kafka"
	nanoid "github.com/jaevor/go-nanoid"
)

type customerNotificationPublisher interface {
	PublishCustomerNotification(ctx context.Context, topic string, event publisher.CustomerNotificationEvent) error
}

// KafkaNotifier queues the message for the messaging service. A broker ack
// counts as delivered.
type KafkaNotifier struct {
	publisher customerNotificationPublisher
	topic     string
	newID     func() string
}

func NewKafkaNotifier(pub customerNotificationPublisher, topic string) (*KafkaNotifier, error) {
	idGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("init message id generator: %w", err)
	}

	return &KafkaNotifier{
		publisher: pub,
		topic:     topic,
		newID:     idGenerator,
	}, nil
}

func (n *KafkaNotifier) Send(ctx context.Context, email, name string, status domain.PaymentStatus) error {
	msg := BuildMessage(email, name, status)

	event := publisher.CustomerNotificationEvent{
		MessageID: n.newID(),
		Email:     msg.Email,
		Name:      msg.Name,
		Status:    msg.Status,
		Subject:   msg.Subject,
		Body:      msg.Body,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.publisher.PublishCustomerNotification(ctx, n.topic, event); err != nil {
		return fmt.Errorf("publish customer notification: %w", err)
	}
	return nil
}
