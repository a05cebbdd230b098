package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const mediaColumns = `id, employer_id, type, url, public_id, bytes, format, alt_text, is_deleted, created_at`

type PostgresMediaRepository struct {
	db *sql.DB
}

func NewPostgresMediaRepository(db *sql.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

func scanMedia(row rowScanner) (models.MediaAsset, error) {
	var m models.MediaAsset
	err := row.Scan(&m.ID, &m.EmployerID, &m.Type, &m.URL, &m.PublicID, &m.Bytes, &m.Format, &m.AltText, &m.IsDeleted, &m.CreatedAt)
	return m, err
}

func (r *PostgresMediaRepository) Create(ctx context.Context, asset *models.MediaAsset) (err error) {
	ctx, span, done := startCall(ctx, "media-repository", "CreateMedia")
	defer func() { done(err) }()

	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("media_id", asset.ID), attribute.String("type", string(asset.Type)))

	query := `INSERT INTO media_assets (id, employer_id, type, url, public_id, bytes, format, alt_text) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query, asset.ID, asset.EmployerID, asset.Type, asset.URL, asset.PublicID, asset.Bytes, asset.Format, asset.AltText).
		Scan(&asset.CreatedAt)
	if err != nil {
		slog.Error("failed to create media asset", "method", "Create", "employer_id", asset.EmployerID, "error", err)
		return fmt.Errorf("failed to create media asset: %w", err)
	}

	slog.Info("media asset created", "method", "Create", "media_id", asset.ID, "employer_id", asset.EmployerID, "type", asset.Type)
	return nil
}

func (r *PostgresMediaRepository) GetByID(ctx context.Context, id string) (result *models.MediaAsset, err error) {
	ctx, _, done := startCall(ctx, "media-repository", "GetMediaByID")
	defer func() { done(err) }()

	m, err := scanMedia(r.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE id = $1 AND is_deleted = FALSE`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrMediaNotFound
		return nil, err
	}
	if err != nil {
		slog.Error("failed to get media asset", "method", "GetByID", "media_id", id, "error", err)
		return nil, fmt.Errorf("failed to get media asset: %w", err)
	}
	return &m, nil
}

func (r *PostgresMediaRepository) ListByEmployer(ctx context.Context, employerID string, mediaType models.MediaType) (result []models.MediaAsset, err error) {
	ctx, _, done := startCall(ctx, "media-repository", "ListMediaByEmployer")
	defer func() { done(err) }()

	var rows *sql.Rows
	if mediaType == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE employer_id = $1 AND is_deleted = FALSE ORDER BY created_at`, employerID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE employer_id = $1 AND type = $2 AND is_deleted = FALSE ORDER BY created_at`, employerID, mediaType)
	}
	if err != nil {
		slog.Error("failed to list media", "method", "ListByEmployer", "employer_id", employerID, "error", err)
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	result = []models.MediaAsset{}
	for rows.Next() {
		m, scanErr := scanMedia(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan media asset: %w", scanErr)
			return nil, err
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media: %w", err)
	}
	return result, nil
}

func (r *PostgresMediaRepository) CountActive(ctx context.Context, employerID string, mediaType models.MediaType) (count int, err error) {
	ctx, _, done := startCall(ctx, "media-repository", "CountActiveMedia")
	defer func() { done(err) }()

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_assets WHERE employer_id = $1 AND type = $2 AND is_deleted = FALSE`, employerID, mediaType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count media: %w", err)
	}
	return count, nil
}

func (r *PostgresMediaRepository) UpdateAltText(ctx context.Context, id, altText string) (err error) {
	ctx, _, done := startCall(ctx, "media-repository", "UpdateMediaAltText")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `UPDATE media_assets SET alt_text = $2 WHERE id = $1 AND is_deleted = FALSE`, id, altText)
	if err != nil {
		slog.Error("failed to update alt text", "method", "UpdateAltText", "media_id", id, "error", err)
		return fmt.Errorf("failed to update alt text: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrMediaNotFound
		return err
	}
	return nil
}

func (r *PostgresMediaRepository) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, _, done := startCall(ctx, "media-repository", "SoftDeleteMedia")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `UPDATE media_assets SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		slog.Error("failed to delete media asset", "method", "SoftDelete", "media_id", id, "error", err)
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrMediaNotFound
		return err
	}

	slog.Info("media asset soft-deleted", "method", "SoftDelete", "media_id", id)
	return nil
}

// SoftDeleteByType marks every active asset of the given type as deleted. An
// empty type covers all types.
func (r *PostgresMediaRepository) SoftDeleteByType(ctx context.Context, employerID string, mediaType models.MediaType) (affected int64, err error) {
	ctx, _, done := startCall(ctx, "media-repository", "SoftDeleteMediaByType")
	defer func() { done(err) }()

	var res sql.Result
	if mediaType == "" {
		res, err = r.db.ExecContext(ctx, `UPDATE media_assets SET is_deleted = TRUE WHERE employer_id = $1 AND is_deleted = FALSE`, employerID)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE media_assets SET is_deleted = TRUE WHERE employer_id = $1 AND type = $2 AND is_deleted = FALSE`, employerID, mediaType)
	}
	if err != nil {
		slog.Error("failed to soft-delete media", "method", "SoftDeleteByType", "employer_id", employerID, "type", mediaType, "error", err)
		return 0, fmt.Errorf("failed to soft-delete media: %w", err)
	}
	affected, _ = res.RowsAffected()
	return affected, nil
}

// SoftDeleteOthers retires the active assets of a type except keepID.
func (r *PostgresMediaRepository) SoftDeleteOthers(ctx context.Context, employerID string, mediaType models.MediaType, keepID string) (affected int64, err error) {
	ctx, _, done := startCall(ctx, "media-repository", "SoftDeleteOtherMedia")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `UPDATE media_assets SET is_deleted = TRUE WHERE employer_id = $1 AND type = $2 AND id <> $3 AND is_deleted = FALSE`, employerID, mediaType, keepID)
	if err != nil {
		slog.Error("failed to soft-delete media", "method", "SoftDeleteOthers", "employer_id", employerID, "type", mediaType, "error", err)
		return 0, fmt.Errorf("failed to soft-delete media: %w", err)
	}
	affected, _ = res.RowsAffected()
	return affected, nil
}
