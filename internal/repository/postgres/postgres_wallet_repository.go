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

const walletColumns = `id, owner_id, balance, total_purchased, total_spent, version, updated_at`

type PostgresWalletRepository struct {
	db *sql.DB
}

func NewPostgresWalletRepository(db *sql.DB) *PostgresWalletRepository {
	return &PostgresWalletRepository{db: db}
}

func (r *PostgresWalletRepository) Create(ctx context.Context, wallet *models.Wallet) (err error) {
	ctx, span, done := startCall(ctx, "wallet-repository", "CreateWallet")
	defer func() { done(err) }()

	if wallet == nil {
		err = pkgerrors.ErrNilWallet
		slog.Error("failed to create wallet", "method", "Create", "error", err)
		return err
	}
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("wallet_id", wallet.ID), attribute.String("owner_id", wallet.OwnerID))

	query := `INSERT INTO wallets (id, owner_id, balance, total_purchased, total_spent, version) VALUES ($1, $2, $3, $4, $5, 1) RETURNING version, updated_at`
	err = r.db.QueryRowContext(ctx, query, wallet.ID, wallet.OwnerID, wallet.Balance, wallet.TotalPurchased, wallet.TotalSpent).
		Scan(&wallet.Version, &wallet.UpdatedAt)
	if isUniqueViolation(err) {
		slog.Warn("wallet already exists", "method", "Create", "owner_id", wallet.OwnerID)
		err = pkgerrors.ErrWalletExists
		return err
	}
	if err != nil {
		slog.Error("failed to create wallet", "method", "Create", "owner_id", wallet.OwnerID, "error", err)
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	slog.Info("wallet created", "method", "Create", "wallet_id", wallet.ID, "owner_id", wallet.OwnerID)
	return nil
}

func (r *PostgresWalletRepository) GetByID(ctx context.Context, id string) (wallet *models.Wallet, err error) {
	ctx, span, done := startCall(ctx, "wallet-repository", "GetWalletByID")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("wallet_id", id))

	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
}

func (r *PostgresWalletRepository) GetByOwner(ctx context.Context, ownerID string) (wallet *models.Wallet, err error) {
	ctx, span, done := startCall(ctx, "wallet-repository", "GetWalletByOwner")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("owner_id", ownerID))

	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE owner_id = $1`, ownerID)
}

func (r *PostgresWalletRepository) getOne(ctx context.Context, query, arg string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&w.ID, &w.OwnerID, &w.Balance, &w.TotalPurchased, &w.TotalSpent, &w.Version, &w.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("wallet not found", "key", arg)
		return nil, pkgerrors.ErrWalletNotFound
	}
	if err != nil {
		slog.Error("failed to get wallet", "key", arg, "error", err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// UpdateBalance is a compare-and-swap on the version column: a writer holding
// a stale copy of the wallet gets ErrConcurrentUpdate and nothing is written.
func (r *PostgresWalletRepository) UpdateBalance(ctx context.Context, wallet *models.Wallet) (err error) {
	ctx, span, done := startCall(ctx, "wallet-repository", "UpdateWalletBalance")
	defer func() { done(err) }()

	if wallet == nil {
		err = pkgerrors.ErrNilWallet
		return err
	}
	span.SetAttributes(
		attribute.String("wallet_id", wallet.ID),
		attribute.Int64("balance", wallet.Balance),
		attribute.Int64("version", wallet.Version),
	)

	query := `UPDATE wallets SET balance = $1, total_purchased = $2, total_spent = $3, version = version + 1, updated_at = NOW() WHERE id = $4 AND version = $5 RETURNING version, updated_at`
	err = r.db.QueryRowContext(ctx, query, wallet.Balance, wallet.TotalPurchased, wallet.TotalSpent, wallet.ID, wallet.Version).
		Scan(&wallet.Version, &wallet.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("wallet version mismatch", "method", "UpdateBalance", "wallet_id", wallet.ID, "version", wallet.Version)
		err = pkgerrors.ErrConcurrentUpdate
		return err
	}
	if err != nil {
		slog.Error("failed to update wallet", "method", "UpdateBalance", "wallet_id", wallet.ID, "error", err)
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	slog.Info("wallet updated", "method", "UpdateBalance", "wallet_id", wallet.ID, "balance", wallet.Balance, "version", wallet.Version)
	return nil
}

func (r *PostgresWalletRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, _, done := startCall(ctx, "wallet-repository", "DeleteWallet")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete wallet", "method", "Delete", "wallet_id", id, "error", err)
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrWalletNotFound
		return err
	}

	slog.Info("wallet deleted", "method", "Delete", "wallet_id", id)
	return nil
}
