package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/models"
)

type PostgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Create appends to event_log. Replays of the same event id are ignored so
// that at-least-once delivery from the queue does not duplicate entries.
func (r *PostgresEventRepository) Create(ctx context.Context, event *models.Event) (err error) {
	ctx, _, done := startCall(ctx, "event-repository", "CreateEvent")
	defer func() { done(err) }()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	var metadata sql.NullString
	if len(event.Metadata) > 0 {
		metadata = sql.NullString{String: string(event.Metadata), Valid: true}
	}

	query := `INSERT INTO event_log (id, employer_id, user_id, event_type, entity_type, entity_id, metadata, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, nullString(event.EmployerID), nullString(event.UserID), event.EventType,
		event.EntityType, event.EntityID, metadata, event.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to store event", "method", "Create", "event_type", event.EventType, "error", err)
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}
