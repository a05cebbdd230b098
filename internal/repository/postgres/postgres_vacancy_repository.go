package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

const vacancyColumns = `id, employer_id, status, input_type, package_id, selected_upsells, title, description, location, employment_type, hours_per_week, salary_min, salary_max, closing_date, application_url, contact_email, intake_notes, submitted_at, last_published_at, created_at, updated_at`

type PostgresVacancyRepository struct {
	db *sql.DB
}

func NewPostgresVacancyRepository(db *sql.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{db: db}
}

func scanVacancy(row rowScanner) (models.Vacancy, error) {
	var (
		v                                 models.Vacancy
		closingDate, submitted, published sql.NullTime
		upsells                           []string
	)
	err := row.Scan(&v.ID, &v.EmployerID, &v.Status, &v.InputType, &v.PackageID, pq.Array(&upsells),
		&v.Title, &v.Description, &v.Location, &v.EmploymentType, &v.HoursPerWeek, &v.SalaryMin, &v.SalaryMax,
		&closingDate, &v.ApplicationURL, &v.ContactEmail, &v.IntakeNotes, &submitted, &published,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return v, err
	}
	if upsells == nil {
		upsells = []string{}
	}
	v.SelectedUpsells = upsells
	v.ClosingDate = timePtr(closingDate)
	v.SubmittedAt = timePtr(submitted)
	v.LastPublishedAt = timePtr(published)
	return v, nil
}

func (r *PostgresVacancyRepository) Create(ctx context.Context, v *models.Vacancy) (err error) {
	ctx, span, done := startCall(ctx, "vacancy-repository", "CreateVacancy")
	defer func() { done(err) }()

	if v == nil {
		err = pkgerrors.ErrNilVacancy
		return err
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("vacancy_id", v.ID), attribute.String("employer_id", v.EmployerID))

	query := `INSERT INTO vacancies (id, employer_id, status, input_type, package_id, selected_upsells, title, description, location, employment_type, hours_per_week, salary_min, salary_max, closing_date, application_url, contact_email, intake_notes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		v.ID, v.EmployerID, v.Status, v.InputType, v.PackageID, pq.Array(v.SelectedUpsells),
		v.Title, v.Description, v.Location, v.EmploymentType, v.HoursPerWeek, v.SalaryMin, v.SalaryMax,
		nullTime(v.ClosingDate), v.ApplicationURL, v.ContactEmail, v.IntakeNotes,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		slog.Error("failed to create vacancy", "method", "Create", "employer_id", v.EmployerID, "error", err)
		return fmt.Errorf("failed to create vacancy: %w", err)
	}

	slog.Info("vacancy created", "method", "Create", "vacancy_id", v.ID, "employer_id", v.EmployerID)
	return nil
}

func (r *PostgresVacancyRepository) GetByID(ctx context.Context, id string) (result *models.Vacancy, err error) {
	ctx, span, done := startCall(ctx, "vacancy-repository", "GetVacancyByID")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("vacancy_id", id))

	v, err := scanVacancy(r.db.QueryRowContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("vacancy not found", "method", "GetByID", "vacancy_id", id)
		err = pkgerrors.ErrVacancyNotFound
		return nil, err
	}
	if err != nil {
		slog.Error("failed to get vacancy", "method", "GetByID", "vacancy_id", id, "error", err)
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}
	return &v, nil
}

// ListByEmployer returns the employer's vacancies, newest first. An empty
// status returns all of them.
func (r *PostgresVacancyRepository) ListByEmployer(ctx context.Context, employerID string, status models.VacancyStatus) (result []models.Vacancy, err error) {
	ctx, span, done := startCall(ctx, "vacancy-repository", "ListVacanciesByEmployer")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("employer_id", employerID), attribute.String("status", string(status)))

	var rows *sql.Rows
	if status == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE employer_id = $1 AND status = $2 ORDER BY created_at DESC`, employerID, status)
	}
	if err != nil {
		slog.Error("failed to list vacancies", "method", "ListByEmployer", "employer_id", employerID, "error", err)
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	defer rows.Close()

	result = []models.Vacancy{}
	for rows.Next() {
		v, scanErr := scanVacancy(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan vacancy: %w", scanErr)
			return nil, err
		}
		result = append(result, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacancies: %w", err)
	}
	return result, nil
}

func (r *PostgresVacancyRepository) Update(ctx context.Context, v *models.Vacancy) (err error) {
	ctx, span, done := startCall(ctx, "vacancy-repository", "UpdateVacancy")
	defer func() { done(err) }()

	if v == nil {
		err = pkgerrors.ErrNilVacancy
		return err
	}
	span.SetAttributes(attribute.String("vacancy_id", v.ID))

	query := `UPDATE vacancies SET input_type = $2, package_id = $3, selected_upsells = $4, title = $5, description = $6, location = $7, employment_type = $8, hours_per_week = $9, salary_min = $10, salary_max = $11, closing_date = $12, application_url = $13, contact_email = $14, intake_notes = $15, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	err = r.db.QueryRowContext(ctx, query,
		v.ID, v.InputType, v.PackageID, pq.Array(v.SelectedUpsells),
		v.Title, v.Description, v.Location, v.EmploymentType, v.HoursPerWeek, v.SalaryMin, v.SalaryMax,
		nullTime(v.ClosingDate), v.ApplicationURL, v.ContactEmail, v.IntakeNotes,
	).Scan(&v.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrVacancyNotFound
		return err
	}
	if err != nil {
		slog.Error("failed to update vacancy", "method", "Update", "vacancy_id", v.ID, "error", err)
		return fmt.Errorf("failed to update vacancy: %w", err)
	}

	slog.Info("vacancy updated", "method", "Update", "vacancy_id", v.ID)
	return nil
}

func (r *PostgresVacancyRepository) UpdateStatus(ctx context.Context, id string, status models.VacancyStatus, submittedAt, publishedAt *time.Time) (err error) {
	ctx, span, done := startCall(ctx, "vacancy-repository", "UpdateVacancyStatus")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("vacancy_id", id), attribute.String("status", string(status)))

	query := `UPDATE vacancies SET status = $2, submitted_at = COALESCE($3::timestamptz, submitted_at), last_published_at = COALESCE($4::timestamptz, last_published_at), updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, nullTime(submittedAt), nullTime(publishedAt))
	if err != nil {
		slog.Error("failed to update vacancy status", "method", "UpdateStatus", "vacancy_id", id, "status", status, "error", err)
		return fmt.Errorf("failed to update vacancy status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrVacancyNotFound
		return err
	}

	slog.Info("vacancy status updated", "method", "UpdateStatus", "vacancy_id", id, "status", status)
	return nil
}

func (r *PostgresVacancyRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, _, done := startCall(ctx, "vacancy-repository", "DeleteVacancy")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete vacancy", "method", "Delete", "vacancy_id", id, "error", err)
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrVacancyNotFound
		return err
	}
	return nil
}
