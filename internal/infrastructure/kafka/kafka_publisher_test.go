package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublish_SetsTopicOnEveryMessage(t *testing.T) {
	w := &recordingWriter{}
	p := &DefaultKafkaPublisher{writer: w}

	err := p.Publish(context.Background(), "payments",
		domain.Message{Key: []byte("a"), Value: []byte("1")},
		domain.Message{Key: []byte("b"), Value: []byte("2")},
	)
	require.NoError(t, err)

	require.Len(t, w.messages, 2)
	for _, m := range w.messages {
		assert.Equal(t, "payments", m.Topic)
		assert.False(t, m.Time.IsZero())
	}
	assert.Equal(t, []byte("b"), w.messages[1].Key)
}

func TestPublishCustomerNotification_KeyedByEmail(t *testing.T) {
	w := &recordingWriter{}
	p := &DefaultKafkaPublisher{writer: w}

	event := CustomerNotificationEvent{
		MessageID: "V1StGXR8_Z5jdHi6B-myT",
		Email:     "ana@example.com",
		Name:      "Ana",
		Status:    "APPROVED",
		Subject:   "Pagamento aprovado",
		CreatedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishCustomerNotification(context.Background(), "customer-notifications", event))

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("ana@example.com"), w.messages[0].Key)

	var decoded CustomerNotificationEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
