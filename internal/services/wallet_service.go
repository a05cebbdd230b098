package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultHistoryLimit = 50

type WalletService interface {
	Get(ctx context.Context, walletID string) (*models.Wallet, error)
	GetForEmployer(ctx context.Context, employerID string) (*models.Wallet, error)
	Add(ctx context.Context, walletID string, amount int64) (*models.Wallet, error)
	Deduct(ctx context.Context, walletID string, amount int64) (*models.Wallet, error)
	Purchase(ctx context.Context, employerID, userID, bundleID string) (*models.PurchaseResult, error)
	History(ctx context.Context, employerID string, limit, offset int) ([]models.Transaction, error)
}

type walletService struct {
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	catalogRepo     repository.CatalogRepository
	effects         *Effects
}

func NewWalletService(
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	catalogRepo repository.CatalogRepository,
	effects *Effects,
) *walletService {
	return &walletService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		catalogRepo:     catalogRepo,
		effects:         effects,
	}
}

func (s *walletService) Get(ctx context.Context, walletID string) (*models.Wallet, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "Get")
	defer span.End()

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) GetForEmployer(ctx context.Context, employerID string) (*models.Wallet, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "GetForEmployer")
	defer span.End()

	wallet, err := s.walletRepo.GetByOwner(ctx, employerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return wallet, nil
}

// Add credits the wallet. The write is conditional on the version read here,
// so a concurrent writer surfaces as ErrConcurrentUpdate instead of a lost
// update.
func (s *walletService) Add(ctx context.Context, walletID string, amount int64) (*models.Wallet, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "Add")
	defer span.End()
	span.SetAttributes(attribute.String("wallet_id", walletID), attribute.Int64("amount", amount))

	if amount <= 0 {
		span.SetStatus(codes.Error, "invalid amount")
		return nil, pkgerrors.ErrInvalidAmount
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	wallet.Balance += amount
	wallet.TotalPurchased += amount
	if err := s.walletRepo.UpdateBalance(ctx, wallet); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update wallet")
		slog.Error("failed to add credits", "wallet_id", walletID, "amount", amount, "error", err)
		return nil, err
	}

	observability.CreditsMoved.WithLabelValues("in").Add(float64(amount))
	slog.Info("credits added", "wallet_id", walletID, "amount", amount, "balance", wallet.Balance)
	return wallet, nil
}

// Deduct debits the wallet, failing with *InsufficientCreditsError and no
// write when the balance does not cover amount.
func (s *walletService) Deduct(ctx context.Context, walletID string, amount int64) (*models.Wallet, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "Deduct")
	defer span.End()
	span.SetAttributes(attribute.String("wallet_id", walletID), attribute.Int64("amount", amount))

	if amount <= 0 {
		span.SetStatus(codes.Error, "invalid amount")
		return nil, pkgerrors.ErrInvalidAmount
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if wallet.Balance < amount {
		span.SetStatus(codes.Error, "insufficient credits")
		slog.Warn("insufficient credits", "wallet_id", walletID, "balance", wallet.Balance, "required", amount)
		return nil, &pkgerrors.InsufficientCreditsError{Required: amount, Available: wallet.Balance}
	}

	wallet.Balance -= amount
	wallet.TotalSpent += amount
	if err := s.walletRepo.UpdateBalance(ctx, wallet); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update wallet")
		slog.Error("failed to deduct credits", "wallet_id", walletID, "amount", amount, "error", err)
		return nil, err
	}

	observability.CreditsMoved.WithLabelValues("out").Add(float64(amount))
	slog.Info("credits deducted", "wallet_id", walletID, "amount", amount, "balance", wallet.Balance)
	return wallet, nil
}

func (s *walletService) Purchase(ctx context.Context, employerID, userID, bundleID string) (*models.PurchaseResult, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "Purchase")
	defer span.End()
	span.SetAttributes(attribute.String("employer_id", employerID), attribute.String("bundle_id", bundleID))

	if bundleID == "" {
		return nil, pkgerrors.NewValidationError("bundle_id")
	}

	bundle, err := s.catalogRepo.GetBundle(ctx, bundleID)
	if stderrors.Is(err, pkgerrors.ErrBundleNotFound) {
		return nil, pkgerrors.NewValidationError("bundle_id")
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	wallet, err := s.walletRepo.GetByOwner(ctx, employerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	wallet, err = s.Add(ctx, wallet.ID, bundle.Credits)
	if err != nil {
		return nil, err
	}

	price := bundle.Price
	tx := &models.Transaction{
		WalletID:      wallet.ID,
		EmployerID:    employerID,
		Type:          models.TypePurchase,
		Status:        models.StatusCompleted,
		CreditsAmount: bundle.Credits,
		MoneyAmount:   &price,
		Description:   bundle.Name,
	}
	txID, err := s.transactionRepo.Create(ctx, tx)
	if err != nil {
		// Credits are already added; the ledger entry is missing and needs
		// manual reconciliation.
		span.RecordError(err)
		slog.Error("purchase transaction not recorded", "wallet_id", wallet.ID, "credits", bundle.Credits, "error", err)
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	s.effects.record(ctx, eventSpec{
		eventType:  models.EventCreditsPurchased,
		employerID: employerID,
		userID:     userID,
		entityType: "transaction",
		entityID:   txID,
		metadata:   map[string]any{"bundle_id": bundle.ID, "credits": bundle.Credits, "price": price.StringFixed(2)},
	})

	return &models.PurchaseResult{TransactionID: txID, CreditsAdded: bundle.Credits, Balance: wallet.Balance}, nil
}

func (s *walletService) History(ctx context.Context, employerID string, limit, offset int) ([]models.Transaction, error) {
	ctx, span := otel.Tracer("wallet-service").Start(ctx, "History")
	defer span.End()

	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	wallet, err := s.walletRepo.GetByOwner(ctx, employerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.transactionRepo.ListByWallet(ctx, wallet.ID, limit, offset)
}
