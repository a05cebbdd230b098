package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	"github.com/segmentio/kafka-go"
)

// Consumer drains the events topic into the event_log table.
type Consumer struct {
	reader    *kafka.Reader
	eventRepo repository.EventRepository
}

func NewConsumer(brokers []string, topic, groupID string, eventRepo repository.EventRepository) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		eventRepo: eventRepo,
	}
}

// Consume blocks until ctx is cancelled. Malformed messages are logged and
// skipped; they are still committed so they do not block the partition.
func (c *Consumer) Consume(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("event consumer stopped")
				return
			}
			slog.Error("failed to read Kafka message", "topic", c.reader.Config().Topic, "error", err)
			time.Sleep(time.Second)
			continue
		}

		if err := c.handleMessage(ctx, msg); err != nil {
			slog.Error("failed to handle event", "topic", msg.Topic, "key", string(msg.Key), "offset", msg.Offset, "error", err)
			// TODO: route unparseable events to a dead-letter topic instead of dropping them.
			continue
		}
	}
}

var errMalformedEvent = stderrors.New("malformed event")

func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event models.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if event.EventType == "" || event.EntityType == "" {
		return fmt.Errorf("%w: event_type and entity_type are required", errMalformedEvent)
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = msg.Time
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := c.eventRepo.Create(ctx, &event); err != nil {
		return err
	}

	slog.Info("event stored", "event_type", event.EventType, "entity_type", event.EntityType, "entity_id", event.EntityID)
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
