package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
)

// SyncEvent tells the public site that an entity changed and should be
// re-read.
type SyncEvent struct {
	Event      string    `json:"event"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EmployerID string    `json:"employer_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SyncNotifier interface {
	// Notify never blocks the caller and never reports failure.
	Notify(ctx context.Context, event SyncEvent)
}

type Notifier struct {
	client *resty.Client
	url    string
	wg     sync.WaitGroup
}

// NewNotifier returns a notifier posting to url. An empty url disables it.
func NewNotifier(url string, timeout time.Duration) *Notifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &Notifier{client: client, url: url}
}

func (n *Notifier) Notify(ctx context.Context, event SyncEvent) {
	if n.url == "" {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	// The request context ends with the response; the webhook outlives it.
	ctx = context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(ctx, event); err != nil {
			observability.SideEffectFailures.WithLabelValues("sync_webhook").Inc()
			slog.Error("sync webhook failed", "event", event.Event, "entity_type", event.EntityType, "entity_id", event.EntityID, "error", err)
		}
	}()
}

func (n *Notifier) send(ctx context.Context, event SyncEvent) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("sync webhook status: %d", resp.StatusCode())
	}
	slog.Debug("sync webhook delivered", "event", event.Event, "entity_id", event.EntityID)
	return nil
}

// Wait blocks until in-flight notifications finish; used on shutdown.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
