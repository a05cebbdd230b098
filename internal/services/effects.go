package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/kafka"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/webhook"
	"github.com/honeynil/employer-dashboard/internal/models"
)

// Effects emits the fire-and-forget consequences of a successful operation:
// an audit event on Kafka and, for changes visible on the public site, a
// sync webhook. Failures are logged and counted, never returned.
type Effects struct {
	producer kafka.KafkaProducer
	topic    string
	notifier webhook.SyncNotifier
	now      func() time.Time
}

func NewEffects(producer kafka.KafkaProducer, topic string, notifier webhook.SyncNotifier) *Effects {
	return &Effects{producer: producer, topic: topic, notifier: notifier, now: time.Now}
}

type eventSpec struct {
	eventType  string
	employerID string
	userID     string
	entityType string
	entityID   string
	metadata   map[string]any
}

func (e *Effects) record(ctx context.Context, spec eventSpec) {
	event := models.Event{
		ID:         uuid.NewString(),
		EmployerID: spec.employerID,
		UserID:     spec.userID,
		EventType:  spec.eventType,
		EntityType: spec.entityType,
		EntityID:   spec.entityID,
		CreatedAt:  e.now().UTC(),
	}
	if len(spec.metadata) > 0 {
		raw, err := json.Marshal(spec.metadata)
		if err != nil {
			slog.Error("failed to marshal event metadata", "event_type", spec.eventType, "error", err)
		} else {
			event.Metadata = raw
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		observability.SideEffectFailures.WithLabelValues("event").Inc()
		slog.Error("failed to marshal event", "event_type", spec.eventType, "error", err)
		return
	}

	key := spec.employerID
	if key == "" {
		key = spec.userID
	}
	if err := e.producer.Send(ctx, e.topic, key, payload); err != nil {
		observability.SideEffectFailures.WithLabelValues("event").Inc()
		slog.Error("failed to publish event", "event_type", spec.eventType, "entity_id", spec.entityID, "error", err)
	}
}

func (e *Effects) sync(ctx context.Context, eventType, entityType, entityID, employerID string) {
	e.notifier.Notify(ctx, webhook.SyncEvent{
		Event:      eventType,
		EntityType: entityType,
		EntityID:   entityID,
		EmployerID: employerID,
		OccurredAt: e.now().UTC(),
	})
}
