package repository

import (
	"context"
	"time"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *models.Vacancy) error
	GetByID(ctx context.Context, id string) (*models.Vacancy, error)
	ListByEmployer(ctx context.Context, employerID string, status models.VacancyStatus) ([]models.Vacancy, error)
	Update(ctx context.Context, vacancy *models.Vacancy) error
	// UpdateStatus sets status and stamps submitted_at or last_published_at
	// when the matching argument is non-nil.
	UpdateStatus(ctx context.Context, id string, status models.VacancyStatus, submittedAt, publishedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}
