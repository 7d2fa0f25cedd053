package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/acmeweb/acme-api/internal/models"
)

// --- Fake Kafka writer ---
type fakeKafkaWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeKafkaWriter) Close() error { return nil }

// --- Tests ---
func TestEventService_PublishChange(t *testing.T) {
	writer := &fakeKafkaWriter{}
	svc := NewEventService(writer)

	recordID := uuid.New()
	svc.PublishChange(context.Background(), "products", "created", recordID)

	assert.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, recordID.String(), string(msg.Key))

	var event models.ChangeEvent
	assert.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "products", event.Resource)
	assert.Equal(t, "created", event.Action)
	assert.Equal(t, recordID.String(), event.RecordID)
	assert.NotZero(t, event.Timestamp)
}

func TestEventService_PublishChange_NilWriter(t *testing.T) {
	svc := NewEventService(nil)

	// Must not panic; publishing is simply skipped
	assert.NotPanics(t, func() {
		svc.PublishChange(context.Background(), "products", "created", uuid.New())
	})
}

func TestEventService_PublishChange_WriteError(t *testing.T) {
	writer := &fakeKafkaWriter{err: errors.New("broker unavailable")}
	svc := NewEventService(writer)

	// Failures are logged, never propagated
	assert.NotPanics(t, func() {
		svc.PublishChange(context.Background(), "products", "deleted", uuid.New())
	})
	assert.Empty(t, writer.messages)
}
