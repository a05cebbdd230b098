package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Activate(ctx context.Context, userID, employerID, roleID string) error
	Delete(ctx context.Context, id string) error
}

type EmployerRepository interface {
	Create(ctx context.Context, employer *models.Employer) error
	GetByID(ctx context.Context, id string) (*models.Employer, error)
	Update(ctx context.Context, employer *models.Employer) error
	SetLogoURL(ctx context.Context, id, logoURL string) error
	SoftDelete(ctx context.Context, id string) error
}
