package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	entityEmployer          = "employer"
	welcomeCreditsNote      = "Welkomstcredits"
	welcomeCreditsEventNote = "welcome_credits"
)

var kvkPattern = regexp.MustCompile(`^[0-9]{8}$`)

type AccountService interface {
	CompleteOnboarding(ctx context.Context, userID string, in models.OnboardingInput) (*models.LoginResult, error)
	GetAccount(ctx context.Context, userID string) (*models.Account, error)
	UpdateCompany(ctx context.Context, employerID, userID string, in models.CompanyInput) (*models.Employer, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type accountService struct {
	userRepo        repository.UserRepository
	employerRepo    repository.EmployerRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	mediaRepo       repository.MediaRepository
	wallets         WalletService
	sessions        AuthService
	effects         *Effects
	roleID          string
	welcomeCredits  int64
}

func NewAccountService(
	userRepo repository.UserRepository,
	employerRepo repository.EmployerRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	mediaRepo repository.MediaRepository,
	wallets WalletService,
	sessions AuthService,
	effects *Effects,
	roleID string,
	welcomeCredits int64,
) *accountService {
	return &accountService{
		userRepo:        userRepo,
		employerRepo:    employerRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		mediaRepo:       mediaRepo,
		wallets:         wallets,
		sessions:        sessions,
		effects:         effects,
		roleID:          roleID,
		welcomeCredits:  welcomeCredits,
	}
}

// CompleteOnboarding turns a pending user into an active employer account:
// employer, wallet, role and a fresh session carrying the employer id.
func (s *accountService) CompleteOnboarding(ctx context.Context, userID string, in models.OnboardingInput) (*models.LoginResult, error) {
	ctx, span := otel.Tracer("account-service").Start(ctx, "CompleteOnboarding")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user.Status != models.UserStatusPendingOnboarding {
		span.SetStatus(codes.Error, "already onboarded")
		return nil, pkgerrors.ErrAlreadyOnboarded
	}

	employer, err := newEmployer(in)
	if err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}
	if err := s.employerRepo.Create(ctx, employer); err != nil {
		span.RecordError(err)
		return nil, err
	}

	wallet := &models.Wallet{OwnerID: employer.ID}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		span.RecordError(err)
		slog.Error("wallet not created, rolling back employer", "employer_id", employer.ID, "error", err)
		s.rollbackOnboarding(ctx, employer.ID, "")
		return nil, err
	}

	if err := s.userRepo.Activate(ctx, user.ID, employer.ID, s.roleID); err != nil {
		span.RecordError(err)
		slog.Error("user not activated, rolling back employer", "employer_id", employer.ID, "error", err)
		s.rollbackOnboarding(ctx, employer.ID, wallet.ID)
		return nil, err
	}
	if s.welcomeCredits > 0 {
		s.grantWelcomeCredits(ctx, employer.ID, wallet.ID)
	}
	user.Status = models.UserStatusActive
	user.EmployerID = employer.ID
	user.RoleID = s.roleID

	result, err := s.sessions.IssueSession(ctx, user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventOnboardingCompleted, employerID: employer.ID, userID: user.ID,
		entityType: entityEmployer, entityID: employer.ID,
		metadata: map[string]any{"company_name": employer.CompanyName},
	})
	s.effects.sync(ctx, models.EventOnboardingCompleted, entityEmployer, employer.ID, employer.ID)

	slog.Info("onboarding completed", "user_id", user.ID, "employer_id", employer.ID)
	return result, nil
}

// rollbackOnboarding releases the employer created by a failed onboarding so
// the kvk number and contact email can be used again on retry.
func (s *accountService) rollbackOnboarding(ctx context.Context, employerID, walletID string) {
	ctx = context.WithoutCancel(ctx)
	if walletID != "" {
		if err := s.walletRepo.Delete(ctx, walletID); err != nil {
			slog.Error("failed to remove wallet of failed onboarding", "wallet_id", walletID, "error", err)
		}
	}
	if err := s.employerRepo.SoftDelete(ctx, employerID); err != nil {
		slog.Error("failed to remove employer of failed onboarding", "employer_id", employerID, "error", err)
	}
}

// grantWelcomeCredits is best effort; onboarding succeeds without them.
func (s *accountService) grantWelcomeCredits(ctx context.Context, employerID, walletID string) {
	if _, err := s.wallets.Add(ctx, walletID, s.welcomeCredits); err != nil {
		slog.Error("failed to grant welcome credits", "employer_id", employerID, "error", err)
		return
	}
	_, err := s.transactionRepo.Create(ctx, &models.Transaction{
		WalletID:      walletID,
		EmployerID:    employerID,
		Type:          models.TypeAdjustment,
		Status:        models.StatusCompleted,
		CreditsAmount: s.welcomeCredits,
		Description:   welcomeCreditsNote,
	})
	if err != nil {
		slog.Error("welcome credits added but not recorded", "employer_id", employerID, "credits", s.welcomeCredits, "error", err)
		return
	}
	s.effects.record(ctx, eventSpec{
		eventType: models.EventCreditsGranted, employerID: employerID,
		entityType: "wallet", entityID: walletID,
		metadata: map[string]any{"credits": s.welcomeCredits, "reason": welcomeCreditsEventNote},
	})
}

func (s *accountService) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	ctx, span := otel.Tracer("account-service").Start(ctx, "GetAccount")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	account := &models.Account{User: user}
	if user.EmployerID == "" {
		return account, nil
	}

	account.Employer, err = s.employerRepo.GetByID(ctx, user.EmployerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	account.Wallet, err = s.walletRepo.GetByOwner(ctx, user.EmployerID)
	if err != nil && !stderrors.Is(err, pkgerrors.ErrWalletNotFound) {
		span.RecordError(err)
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdateCompany(ctx context.Context, employerID, userID string, in models.CompanyInput) (*models.Employer, error) {
	ctx, span := otel.Tracer("account-service").Start(ctx, "UpdateCompany")
	defer span.End()

	employer, err := s.employerRepo.GetByID(ctx, employerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	setString(&employer.CompanyName, in.CompanyName)
	setString(&employer.Phone, in.Phone)
	setString(&employer.Website, in.Website)
	setString(&employer.Description, in.Description)
	setString(&employer.Address, in.Address)
	setString(&employer.PostalCode, in.PostalCode)
	setString(&employer.City, in.City)
	if in.ContactEmail != nil {
		employer.ContactEmail = strings.ToLower(strings.TrimSpace(*in.ContactEmail))
	}

	var invalid []string
	if employer.CompanyName == "" {
		invalid = append(invalid, "company_name")
	}
	if _, err := normalizeEmail(employer.ContactEmail); err != nil {
		invalid = append(invalid, "contact_email")
	}
	if len(invalid) > 0 {
		return nil, pkgerrors.NewValidationError(invalid...)
	}

	if err := s.employerRepo.Update(ctx, employer); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventCompanyUpdated, employerID: employerID, userID: userID,
		entityType: entityEmployer, entityID: employerID,
	})
	s.effects.sync(ctx, models.EventCompanyUpdated, entityEmployer, employerID, employerID)
	return employer, nil
}

// DeleteAccount removes the user and retires the employer: media and the
// employer row are soft-deleted, the wallet is removed.
func (s *accountService) DeleteAccount(ctx context.Context, userID string) error {
	ctx, span := otel.Tracer("account-service").Start(ctx, "DeleteAccount")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if employerID := user.EmployerID; employerID != "" {
		if _, err := s.mediaRepo.SoftDeleteByType(ctx, employerID, ""); err != nil {
			span.RecordError(err)
			return err
		}
		wallet, err := s.walletRepo.GetByOwner(ctx, employerID)
		switch {
		case err == nil:
			if err := s.walletRepo.Delete(ctx, wallet.ID); err != nil && !stderrors.Is(err, pkgerrors.ErrWalletNotFound) {
				span.RecordError(err)
				return err
			}
		case !stderrors.Is(err, pkgerrors.ErrWalletNotFound):
			span.RecordError(err)
			return err
		}
		if err := s.employerRepo.SoftDelete(ctx, employerID); err != nil && !stderrors.Is(err, pkgerrors.ErrEmployerNotFound) {
			span.RecordError(err)
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.sessions.Logout(ctx, userID); err != nil {
		slog.Warn("account deleted but session not revoked", "user_id", userID, "error", err)
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventAccountDeleted, employerID: user.EmployerID, userID: userID,
		entityType: "user", entityID: userID,
	})
	if user.EmployerID != "" {
		s.effects.sync(ctx, models.EventAccountDeleted, entityEmployer, user.EmployerID, user.EmployerID)
	}

	slog.Info("account deleted", "user_id", userID, "employer_id", user.EmployerID)
	return nil
}

func newEmployer(in models.OnboardingInput) (*models.Employer, error) {
	e := &models.Employer{
		CompanyName:  strings.TrimSpace(in.CompanyName),
		KvKNumber:    strings.ReplaceAll(strings.TrimSpace(in.KvKNumber), " ", ""),
		ContactEmail: strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		Phone:        strings.TrimSpace(in.Phone),
		Website:      strings.TrimSpace(in.Website),
		Description:  strings.TrimSpace(in.Description),
		Address:      strings.TrimSpace(in.Address),
		PostalCode:   strings.ToUpper(strings.TrimSpace(in.PostalCode)),
		City:         strings.TrimSpace(in.City),
	}

	var invalid []string
	if e.CompanyName == "" {
		invalid = append(invalid, "company_name")
	}
	if !kvkPattern.MatchString(e.KvKNumber) {
		invalid = append(invalid, "kvk_number")
	}
	if _, err := normalizeEmail(e.ContactEmail); err != nil {
		invalid = append(invalid, "contact_email")
	}
	if len(invalid) > 0 {
		return nil, pkgerrors.NewValidationError(invalid...)
	}
	return e, nil
}
