package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
}
