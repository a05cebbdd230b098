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
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *models.Transaction) (id string, err error) {
	ctx, span, done := startCall(ctx, "transaction-repository", "CreateTransaction")
	defer func() { done(err) }()

	if tx == nil {
		err = pkgerrors.ErrNilTransaction
		slog.Error("failed to create transaction", "method", "Create", "error", err)
		return "", err
	}

	if !tx.Type.Valid() {
		err = pkgerrors.ErrInvalidTransactionType
		slog.Error("invalid transaction type", "method", "Create", "type", tx.Type, "error", err)
		return "", err
	}

	if !tx.Status.Valid() {
		err = pkgerrors.ErrInvalidTransactionStatus
		slog.Error("invalid transaction status", "method", "Create", "status", tx.Status, "error", err)
		return "", err
	}

	if tx.CreditsAmount <= 0 {
		err = pkgerrors.ErrInvalidAmount
		slog.Error("amount must be positive", "method", "Create", "amount", tx.CreditsAmount, "error", err)
		return "", err
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	span.SetAttributes(
		attribute.String("wallet_id", tx.WalletID),
		attribute.String("vacancy_id", tx.VacancyID),
		attribute.Int64("credits_amount", tx.CreditsAmount),
		attribute.String("type", string(tx.Type)),
		attribute.String("status", string(tx.Status)),
	)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", "Create", "error", err)
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `INSERT INTO transactions (id, wallet_id, employer_id, vacancy_id, type, status, credits_amount, money_amount, description) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`
	var createdAt time.Time
	err = dbTx.QueryRowContext(ctx, query,
		tx.ID, tx.WalletID, tx.EmployerID, nullString(tx.VacancyID), tx.Type, tx.Status,
		tx.CreditsAmount, tx.MoneyAmount, tx.Description,
	).Scan(&createdAt)
	if err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			err = fmt.Errorf("rollback failed: %v; original error: %w", rbErr, err)
			slog.Error("rollback failed", "method", "Create", "error", rbErr)
		} else {
			slog.Error("failed to create transaction", "method", "Create", "wallet_id", tx.WalletID, "type", tx.Type, "status", tx.Status, "error", err)
		}
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", "Create", "error", err)
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	tx.CreatedAt = createdAt
	slog.Info("transaction created", "method", "Create", "id", tx.ID, "wallet_id", tx.WalletID, "vacancy_id", tx.VacancyID, "type", tx.Type, "credits", tx.CreditsAmount)
	return tx.ID, nil
}

const transactionColumns = `id, wallet_id, employer_id, vacancy_id, type, status, credits_amount, money_amount, description, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		tx        models.Transaction
		vacancyID sql.NullString
		money     decimal.NullDecimal
	)
	err := row.Scan(&tx.ID, &tx.WalletID, &tx.EmployerID, &vacancyID, &tx.Type, &tx.Status,
		&tx.CreditsAmount, &money, &tx.Description, &tx.CreatedAt)
	if err != nil {
		return tx, err
	}
	tx.VacancyID = vacancyID.String
	if money.Valid {
		tx.MoneyAmount = &money.Decimal
	}
	return tx, nil
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (result *models.Transaction, err error) {
	ctx, span, done := startCall(ctx, "transaction-repository", "GetTransactionByID")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("transaction_id", id))

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Error("transaction not found", "method", "GetByID", "transaction_id", id, "error", err)
		err = pkgerrors.ErrTransactionNotFound
		return nil, err
	}
	if err != nil {
		slog.Error("failed to get transaction by id", "method", "GetByID", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction by id: %w", err)
	}

	slog.Info("transaction retrieved", "method", "GetByID", "transaction_id", id, "wallet_id", tx.WalletID, "type", tx.Type)
	return &tx, nil
}

func (r *PostgresTransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) (result []models.Transaction, err error) {
	ctx, span, done := startCall(ctx, "transaction-repository", "ListTransactionsByWallet")
	defer func() { done(err) }()
	span.SetAttributes(attribute.String("wallet_id", walletID), attribute.Int("limit", limit), attribute.Int("offset", offset))

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, walletID, limit, offset)
	if err != nil {
		slog.Error("failed to list transactions", "method", "ListByWallet", "wallet_id", walletID, "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	result = []models.Transaction{}
	for rows.Next() {
		tx, scanErr := scanTransaction(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan transaction: %w", scanErr)
			return nil, err
		}
		result = append(result, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	slog.Info("transactions listed", "method", "ListByWallet", "wallet_id", walletID, "count", len(result))
	return result, nil
}
