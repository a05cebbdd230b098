package repository

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/models"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id string) (*models.Wallet, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Wallet, error)
	// UpdateBalance persists balance and totals when the stored version still
	// equals wallet.Version, then bumps wallet.Version.
	UpdateBalance(ctx context.Context, wallet *models.Wallet) error
	Delete(ctx context.Context, id string) error
}
