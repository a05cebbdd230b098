package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type MediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) error
	GetByID(ctx context.Context, id string) (*models.MediaAsset, error)
	ListByEmployer(ctx context.Context, employerID string, mediaType models.MediaType) ([]models.MediaAsset, error)
	CountActive(ctx context.Context, employerID string, mediaType models.MediaType) (int, error)
	UpdateAltText(ctx context.Context, id, altText string) error
	SoftDelete(ctx context.Context, id string) error
	SoftDeleteByType(ctx context.Context, employerID string, mediaType models.MediaType) (int64, error)
	SoftDeleteOthers(ctx context.Context, employerID string, mediaType models.MediaType, keepID string) (int64, error)
}
