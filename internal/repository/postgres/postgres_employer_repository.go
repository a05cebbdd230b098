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

const employerColumns = `id, company_name, kvk_number, contact_email, phone, website, description, address, postal_code, city, logo_url, created_at, updated_at`

type PostgresEmployerRepository struct {
	db *sql.DB
}

func NewPostgresEmployerRepository(db *sql.DB) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{db: db}
}

// Create inserts the employer. kvk_number and contact_email are unique among
// live employers; a clash is reported as ErrEmployerExists.
func (r *PostgresEmployerRepository) Create(ctx context.Context, e *models.Employer) (err error) {
	ctx, span, done := startCall(ctx, "employer-repository", "CreateEmployer")
	defer func() { done(err) }()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("employer_id", e.ID))

	query := `INSERT INTO employers (id, company_name, kvk_number, contact_email, phone, website, description, address, postal_code, city) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		e.ID, e.CompanyName, e.KvKNumber, e.ContactEmail, e.Phone, e.Website, e.Description, e.Address, e.PostalCode, e.City,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		slog.Warn("employer already exists", "method", "Create", "kvk_number", e.KvKNumber)
		err = pkgerrors.ErrEmployerExists
		return err
	}
	if err != nil {
		slog.Error("failed to create employer", "method", "Create", "error", err)
		return fmt.Errorf("failed to create employer: %w", err)
	}

	slog.Info("employer created", "method", "Create", "employer_id", e.ID)
	return nil
}

func (r *PostgresEmployerRepository) GetByID(ctx context.Context, id string) (result *models.Employer, err error) {
	ctx, _, done := startCall(ctx, "employer-repository", "GetEmployerByID")
	defer func() { done(err) }()

	var e models.Employer
	err = r.db.QueryRowContext(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&e.ID, &e.CompanyName, &e.KvKNumber, &e.ContactEmail, &e.Phone, &e.Website, &e.Description,
			&e.Address, &e.PostalCode, &e.City, &e.LogoURL, &e.CreatedAt, &e.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrEmployerNotFound
		return nil, err
	}
	if err != nil {
		slog.Error("failed to get employer", "method", "GetByID", "employer_id", id, "error", err)
		return nil, fmt.Errorf("failed to get employer: %w", err)
	}
	return &e, nil
}

func (r *PostgresEmployerRepository) Update(ctx context.Context, e *models.Employer) (err error) {
	ctx, _, done := startCall(ctx, "employer-repository", "UpdateEmployer")
	defer func() { done(err) }()

	query := `UPDATE employers SET company_name = $2, contact_email = $3, phone = $4, website = $5, description = $6, address = $7, postal_code = $8, city = $9, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL RETURNING updated_at`
	err = r.db.QueryRowContext(ctx, query,
		e.ID, e.CompanyName, e.ContactEmail, e.Phone, e.Website, e.Description, e.Address, e.PostalCode, e.City,
	).Scan(&e.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrEmployerNotFound
		return err
	}
	if isUniqueViolation(err) {
		err = pkgerrors.ErrEmployerExists
		return err
	}
	if err != nil {
		slog.Error("failed to update employer", "method", "Update", "employer_id", e.ID, "error", err)
		return fmt.Errorf("failed to update employer: %w", err)
	}

	slog.Info("employer updated", "method", "Update", "employer_id", e.ID)
	return nil
}

func (r *PostgresEmployerRepository) SetLogoURL(ctx context.Context, id, logoURL string) (err error) {
	ctx, _, done := startCall(ctx, "employer-repository", "SetEmployerLogo")
	defer func() { done(err) }()

	_, err = r.db.ExecContext(ctx, `UPDATE employers SET logo_url = $2, updated_at = NOW() WHERE id = $1`, id, logoURL)
	if err != nil {
		slog.Error("failed to set logo url", "method", "SetLogoURL", "employer_id", id, "error", err)
		return fmt.Errorf("failed to set logo url: %w", err)
	}
	return nil
}

func (r *PostgresEmployerRepository) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, _, done := startCall(ctx, "employer-repository", "SoftDeleteEmployer")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `UPDATE employers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		slog.Error("failed to delete employer", "method", "SoftDelete", "employer_id", id, "error", err)
		return fmt.Errorf("failed to delete employer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrEmployerNotFound
		return err
	}

	slog.Info("employer soft-deleted", "method", "SoftDelete", "employer_id", id)
	return nil
}
