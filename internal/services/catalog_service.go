package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/redis"
	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	"go.opentelemetry.io/otel"
)

const (
	catalogKey = "catalog:v1"
	catalogTTL = 10 * time.Minute
)

type CatalogService interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	redisClient redis.RedisClient
}

func NewCatalogService(catalogRepo repository.CatalogRepository, redisClient redis.RedisClient) *catalogService {
	return &catalogService{catalogRepo: catalogRepo, redisClient: redisClient}
}

// Catalog serves packages, upsells and bundles from Redis, falling back to
// the database on a miss or a broken cache entry.
func (s *catalogService) Catalog(ctx context.Context) (*models.Catalog, error) {
	ctx, span := otel.Tracer("catalog-service").Start(ctx, "Catalog")
	defer span.End()

	cached, err := s.redisClient.Get(ctx, catalogKey)
	switch {
	case err == nil:
		var catalog models.Catalog
		jsonErr := json.Unmarshal([]byte(cached), &catalog)
		if jsonErr == nil {
			return &catalog, nil
		}
		slog.Warn("discarding malformed catalog cache entry", "error", jsonErr)
	case !stderrors.Is(err, redis.ErrKeyNotFound):
		slog.Warn("failed to read catalog cache", "error", err)
	}

	catalog, err := s.catalogRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	raw, err := json.Marshal(catalog)
	if err != nil {
		slog.Error("failed to marshal catalog", "error", err)
		return catalog, nil
	}
	if err := s.redisClient.Set(ctx, catalogKey, string(raw), catalogTTL); err != nil {
		slog.Warn("failed to cache catalog", "error", err)
	}
	return catalog, nil
}
