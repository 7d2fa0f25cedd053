package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventService publishes change events after successful writes.
// Publishing is best effort: failures are logged and never surfaced
// to the request that triggered them.
type EventService struct {
	writer KafkaWriter
}

// NewEventService creates an EventService. writer may be nil, in
// which case publishing is skipped.
func NewEventService(writer KafkaWriter) *EventService {
	return &EventService{writer: writer}
}

// PublishChange emits one change event for a record mutation.
func (s *EventService) PublishChange(ctx context.Context, resourceName, action string, recordID uuid.UUID) {
	if s.writer == nil {
		logger.Log.Debugw("kafka writer not configured, skipping publish",
			"resource", resourceName, "action", action)
		return
	}

	event := models.ChangeEvent{
		EventID:   uuid.NewString(),
		Resource:  resourceName,
		Action:    action,
		RecordID:  recordID.String(),
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal change event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.RecordID),
		Value: data,
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish change event",
			"event_id", event.EventID, "resource", resourceName, "error", err)
		return
	}

	logger.Log.Infow("change event published",
		"event_id", event.EventID, "resource", resourceName, "action", action)
}
