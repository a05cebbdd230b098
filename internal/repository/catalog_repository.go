package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type CatalogRepository interface {
	GetPackage(ctx context.Context, id string) (*models.Package, error)
	GetUpsells(ctx context.Context, ids []string) ([]models.Upsell, error)
	GetBundle(ctx context.Context, id string) (*models.CreditBundle, error)
	List(ctx context.Context) (*models.Catalog, error)
}
