package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) (string, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]models.Transaction, error)
}
