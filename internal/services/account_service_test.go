package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/auth"
	mailermocks "github.com/honeynil/employer-dashboard/internal/infrastructure/mailer/mocks"
	redismocks "github.com/honeynil/employer-dashboard/internal/infrastructure/redis/mocks"
	"github.com/honeynil/employer-dashboard/internal/models"
	repositorymocks "github.com/honeynil/employer-dashboard/internal/repository/mocks"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type accountFixture struct {
	service      *accountService
	users        *repositorymocks.MockUserRepository
	employers    *repositorymocks.MockEmployerRepository
	wallets      *repositorymocks.MockWalletRepository
	transactions *repositorymocks.MockTransactionRepository
	media        *repositorymocks.MockMediaRepository
	redis        *redismocks.MockRedisClient
	tokens       *auth.TokenManager
	effects      testEffects
}

func newAccountFixture(t *testing.T, welcomeCredits int64) *accountFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &accountFixture{
		users:        repositorymocks.NewMockUserRepository(ctrl),
		employers:    repositorymocks.NewMockEmployerRepository(ctrl),
		wallets:      repositorymocks.NewMockWalletRepository(ctrl),
		transactions: repositorymocks.NewMockTransactionRepository(ctrl),
		media:        repositorymocks.NewMockMediaRepository(ctrl),
		redis:        redismocks.NewMockRedisClient(ctrl),
		tokens:       auth.NewTokenManager("test-secret", time.Hour),
		effects:      newTestEffects(ctrl),
	}
	f.effects.allowAll()

	wallets := NewWalletService(f.wallets, f.transactions, repositorymocks.NewMockCatalogRepository(ctrl), f.effects.Effects)
	sessions := NewAuthService(f.users, f.redis, f.tokens, mailermocks.NewMockMailer(ctrl), f.effects.Effects, MagicLinkConfig{})
	f.service = NewAccountService(f.users, f.employers, f.wallets, f.transactions, f.media,
		wallets, sessions, f.effects.Effects, "role-employer", welcomeCredits)
	return f
}

var validOnboarding = models.OnboardingInput{
	CompanyName:  " Bakkerij de Gouden Korst ",
	KvKNumber:    "1234 5678",
	ContactEmail: "Info@GoudenKorst.nl",
	PostalCode:   "3511ab",
	City:         "Utrecht",
}

func TestAccountService_CompleteOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("creates employer wallet and session", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").
			Return(&models.User{ID: "u1", Email: "jan@goudenkorst.nl", Status: models.UserStatusPendingOnboarding}, nil)
		f.employers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Employer) error {
			assert.Equal(t, "Bakkerij de Gouden Korst", e.CompanyName)
			assert.Equal(t, "12345678", e.KvKNumber)
			assert.Equal(t, "info@goudenkorst.nl", e.ContactEmail)
			assert.Equal(t, "3511AB", e.PostalCode)
			e.ID = "e1"
			return nil
		})
		f.wallets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *models.Wallet) error {
			assert.Equal(t, "e1", w.OwnerID)
			assert.Zero(t, w.Balance)
			w.ID = "w1"
			return nil
		})
		f.users.EXPECT().Activate(gomock.Any(), "u1", "e1", "role-employer").Return(nil)
		f.redis.EXPECT().Set(gomock.Any(), "session:u1", gomock.Any(), time.Hour).Return(nil)

		result, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		require.NoError(t, err)
		assert.Equal(t, models.UserStatusActive, result.User.Status)

		session, err := f.tokens.Parse(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "e1", session.EmployerID)
		assert.True(t, session.Active())
	})

	t.Run("welcome credits are granted", func(t *testing.T) {
		f := newAccountFixture(t, 5)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)
		f.employers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Employer) error {
			e.ID = "e1"
			return nil
		})
		f.wallets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *models.Wallet) error {
			w.ID = "w1"
			return nil
		})
		f.wallets.EXPECT().GetByID(gomock.Any(), "w1").Return(&models.Wallet{ID: "w1", OwnerID: "e1", Version: 1}, nil)
		f.wallets.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(nil)
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *models.Transaction) (string, error) {
			assert.Equal(t, models.TypeAdjustment, tx.Type)
			assert.Equal(t, int64(5), tx.CreditsAmount)
			return "t1", nil
		})
		f.users.EXPECT().Activate(gomock.Any(), "u1", "e1", "role-employer").Return(nil)
		f.redis.EXPECT().Set(gomock.Any(), "session:u1", gomock.Any(), time.Hour).Return(nil)

		_, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		require.NoError(t, err)
		assert.Contains(t, f.effects.eventTypes(), models.EventCreditsGranted)
		assert.NotContains(t, f.effects.eventTypes(), models.EventCreditsPurchased)
	})

	t.Run("wallet failure releases the employer for a retry", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		employers := newMemEmployers()
		f.service.employerRepo = employers

		f.users.EXPECT().GetByID(gomock.Any(), "u1").
			Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil).Times(2)
		gomock.InOrder(
			f.wallets.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("pq: connection reset")),
			f.wallets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *models.Wallet) error {
				w.ID = "w1"
				return nil
			}),
		)
		f.users.EXPECT().Activate(gomock.Any(), "u1", "e2", "role-employer").Return(nil)
		f.redis.EXPECT().Set(gomock.Any(), "session:u1", gomock.Any(), time.Hour).Return(nil)

		_, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		require.Error(t, err)
		_, err = employers.GetByID(ctx, "e1")
		assert.ErrorIs(t, err, pkgerrors.ErrEmployerNotFound)

		result, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		require.NoError(t, err)
		assert.Equal(t, "e2", result.User.EmployerID)
	})

	t.Run("activation failure removes wallet and employer", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)
		f.employers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Employer) error {
			e.ID = "e1"
			return nil
		})
		f.wallets.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *models.Wallet) error {
			w.ID = "w1"
			return nil
		})
		f.users.EXPECT().Activate(gomock.Any(), "u1", "e1", "role-employer").Return(errors.New("pq: connection reset"))
		gomock.InOrder(
			f.wallets.EXPECT().Delete(gomock.Any(), "w1").Return(nil),
			f.employers.EXPECT().SoftDelete(gomock.Any(), "e1").Return(nil),
		)

		_, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		assert.Error(t, err)
		assert.NotContains(t, f.effects.eventTypes(), models.EventOnboardingCompleted)
	})

	t.Run("already onboarded", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusActive, EmployerID: "e1"}, nil)

		_, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		assert.ErrorIs(t, err, pkgerrors.ErrAlreadyOnboarded)
	})

	t.Run("invalid company details", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)

		_, err := f.service.CompleteOnboarding(ctx, "u1", models.OnboardingInput{KvKNumber: "123", ContactEmail: "geen-mail"})
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"company_name", "kvk_number", "contact_email"}, validation.Fields)
	})

	t.Run("kvk already registered", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)
		f.employers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(pkgerrors.ErrEmployerExists)

		_, err := f.service.CompleteOnboarding(ctx, "u1", validOnboarding)
		assert.ErrorIs(t, err, pkgerrors.ErrEmployerExists)
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("pending user has no employer", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)

		account, err := f.service.GetAccount(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, account.Employer)
		assert.Nil(t, account.Wallet)
	})

	t.Run("active user", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive}, nil)
		f.employers.EXPECT().GetByID(gomock.Any(), "e1").Return(&models.Employer{ID: "e1", CompanyName: "Gouden Korst"}, nil)
		f.wallets.EXPECT().GetByOwner(gomock.Any(), "e1").Return(&models.Wallet{ID: "w1", Balance: 12}, nil)

		account, err := f.service.GetAccount(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Gouden Korst", account.Employer.CompanyName)
		assert.Equal(t, int64(12), account.Wallet.Balance)
	})
}

func TestAccountService_UpdateCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.employers.EXPECT().GetByID(gomock.Any(), "e1").
			Return(&models.Employer{ID: "e1", CompanyName: "Gouden Korst", KvKNumber: "12345678", ContactEmail: "info@goudenkorst.nl"}, nil)
		f.employers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		employer, err := f.service.UpdateCompany(ctx, "e1", "u1", models.CompanyInput{City: ptr("Amersfoort")})
		require.NoError(t, err)
		assert.Equal(t, "Amersfoort", employer.City)
		assert.Equal(t, "Gouden Korst", employer.CompanyName)
		assert.Equal(t, "12345678", employer.KvKNumber)
	})

	t.Run("empty company name", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.employers.EXPECT().GetByID(gomock.Any(), "e1").
			Return(&models.Employer{ID: "e1", CompanyName: "Gouden Korst", ContactEmail: "info@goudenkorst.nl"}, nil)

		_, err := f.service.UpdateCompany(ctx, "e1", "u1", models.CompanyInput{CompanyName: ptr("  ")})
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"company_name"}, validation.Fields)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("employer account", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive}, nil)
		gomock.InOrder(
			f.media.EXPECT().SoftDeleteByType(gomock.Any(), "e1", models.MediaType("")).Return(int64(3), nil),
			f.wallets.EXPECT().GetByOwner(gomock.Any(), "e1").Return(&models.Wallet{ID: "w1"}, nil),
			f.wallets.EXPECT().Delete(gomock.Any(), "w1").Return(nil),
			f.employers.EXPECT().SoftDelete(gomock.Any(), "e1").Return(nil),
			f.users.EXPECT().Delete(gomock.Any(), "u1").Return(nil),
			f.redis.EXPECT().Del(gomock.Any(), "session:u1").Return(nil),
		)

		assert.NoError(t, f.service.DeleteAccount(ctx, "u1"))
	})

	t.Run("pending user", func(t *testing.T) {
		f := newAccountFixture(t, 0)
		f.users.EXPECT().GetByID(gomock.Any(), "u1").Return(&models.User{ID: "u1", Status: models.UserStatusPendingOnboarding}, nil)
		f.users.EXPECT().Delete(gomock.Any(), "u1").Return(nil)
		f.redis.EXPECT().Del(gomock.Any(), "session:u1").Return(errors.New("redis down"))

		assert.NoError(t, f.service.DeleteAccount(ctx, "u1"))
	})
}
