package service

import (
	"context"
	"errors"
	"testing"
	"time"

	redismocks "github.com/honeynil/employer-dashboard/internal/infrastructure/redis/mocks"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/webhook"
	"github.com/honeynil/employer-dashboard/internal/models"
	repositorymocks "github.com/honeynil/employer-dashboard/internal/repository/mocks"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

type vacancyFixture struct {
	service      *vacancyService
	vacancies    *repositorymocks.MockVacancyRepository
	catalog      *repositorymocks.MockCatalogRepository
	transactions *repositorymocks.MockTransactionRepository
	wallets      *repositorymocks.MockWalletRepository
	redis        *redismocks.MockRedisClient
	effects      testEffects
}

func newVacancyFixture(t *testing.T) *vacancyFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &vacancyFixture{
		vacancies:    repositorymocks.NewMockVacancyRepository(ctrl),
		catalog:      repositorymocks.NewMockCatalogRepository(ctrl),
		transactions: repositorymocks.NewMockTransactionRepository(ctrl),
		wallets:      repositorymocks.NewMockWalletRepository(ctrl),
		redis:        redismocks.NewMockRedisClient(ctrl),
		effects:      newTestEffects(ctrl),
	}
	wallets := NewWalletService(f.wallets, f.transactions, f.catalog, f.effects.Effects)
	f.service = NewVacancyService(f.vacancies, f.catalog, f.transactions, wallets, f.redis, f.effects.Effects)
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func (f *vacancyFixture) expectLock(vacancyID string) {
	key := "vacancy:" + vacancyID + ":submit"
	f.redis.EXPECT().SetNX(gomock.Any(), key, gomock.Any(), submitLockTTL).Return(true, nil)
	f.redis.EXPECT().Del(gomock.Any(), key).Return(nil)
}

func (f *vacancyFixture) expectPricing() {
	f.catalog.EXPECT().GetPackage(gomock.Any(), "basic").
		Return(&models.Package{ID: "basic", Name: "Basis", Credits: 10, DurationDays: 30}, nil)
	f.catalog.EXPECT().GetUpsells(gomock.Any(), []string{"social"}).
		Return([]models.Upsell{{ID: "social", Name: "Social boost", Credits: 6}}, nil)
}

func (f *vacancyFixture) expectWallet(balance int64) {
	w := models.Wallet{ID: "w1", OwnerID: "e1", Balance: balance, TotalPurchased: balance, Version: 4}
	f.wallets.EXPECT().GetByOwner(gomock.Any(), "e1").DoAndReturn(func(context.Context, string) (*models.Wallet, error) {
		cp := w
		return &cp, nil
	})
	f.wallets.EXPECT().GetByID(gomock.Any(), "w1").DoAndReturn(func(context.Context, string) (*models.Wallet, error) {
		cp := w
		return &cp, nil
	}).AnyTimes()
}

func readyVacancy() *models.Vacancy {
	closing := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	return &models.Vacancy{
		ID:              "v1",
		EmployerID:      "e1",
		Status:          models.VacancyConcept,
		InputType:       models.InputSelfService,
		PackageID:       "basic",
		SelectedUpsells: []string{"social"},
		Title:           "Backend developer",
		Description:     "Go en Postgres",
		Location:        "Utrecht",
		EmploymentType:  "fulltime",
		ClosingDate:     &closing,
		ApplicationURL:  "https://example.nl/solliciteer",
	}
}

func TestVacancyService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("charges package and upsells", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.allowAll()
		f.expectLock("v1")
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(readyVacancy(), nil)
		f.expectPricing()
		f.expectWallet(20)
		f.wallets.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *models.Wallet) error {
			assert.Equal(t, int64(4), w.Balance)
			assert.Equal(t, int64(16), w.TotalSpent)
			return nil
		})
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *models.Transaction) (string, error) {
			assert.Equal(t, models.TypeSpend, tx.Type)
			assert.Equal(t, int64(16), tx.CreditsAmount)
			assert.Equal(t, "v1", tx.VacancyID)
			assert.Nil(t, tx.MoneyAmount)
			return "t1", nil
		})
		f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyAwaitingApproval, gomock.Not(gomock.Nil()), nil).
			DoAndReturn(func(_ context.Context, _ string, _ models.VacancyStatus, submittedAt, _ *time.Time) error {
				assert.True(t, submittedAt.Equal(fixedNow))
				return nil
			})

		result, err := f.service.Submit(ctx, "e1", "u1", "v1")
		require.NoError(t, err)
		assert.Equal(t, &models.SubmitResult{
			VacancyID:     "v1",
			Status:        models.VacancyAwaitingApproval,
			CreditsSpent:  16,
			Balance:       4,
			TransactionID: "t1",
		}, result)
	})

	t.Run("insufficient credits leaves vacancy untouched", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(readyVacancy(), nil)
		f.expectPricing()
		f.expectWallet(10)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		var insufficient *pkgerrors.InsufficientCreditsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, int64(16), insufficient.Required)
		assert.Equal(t, int64(10), insufficient.Available)
		assert.Equal(t, int64(6), insufficient.Shortage())
	})

	t.Run("missing location deducts nothing", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		v := readyVacancy()
		v.Location = "  "
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"location"}, validation.Fields)
	})

	t.Run("closing date today is rejected", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		v := readyVacancy()
		today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
		v.ClosingDate = &today
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"closing_date"}, validation.Fields)
	})

	t.Run("we do it for you needs intake notes only", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(&models.Vacancy{
			ID: "v1", EmployerID: "e1", Status: models.VacancyConcept,
			InputType: models.InputWeDoItForYou, Title: "Monteur",
		}, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"intake_notes", "package_id"}, validation.Fields)
	})

	t.Run("resubmission is free", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.allowAll()
		f.expectLock("v1")
		v := readyVacancy()
		v.Status = models.VacancyNeedsAdjustment
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
		f.expectPricing()
		f.wallets.EXPECT().GetByOwner(gomock.Any(), "e1").Return(&models.Wallet{ID: "w1", OwnerID: "e1", Balance: 3}, nil)
		f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyAwaitingApproval, gomock.Any(), nil).Return(nil)

		result, err := f.service.Submit(ctx, "e1", "u1", "v1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.CreditsSpent)
		assert.Equal(t, int64(3), result.Balance)
		assert.Empty(t, result.TransactionID)
	})

	t.Run("unknown upsell", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		v := readyVacancy()
		v.SelectedUpsells = []string{"social", "retired"}
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
		f.catalog.EXPECT().GetPackage(gomock.Any(), "basic").Return(&models.Package{ID: "basic", Credits: 10}, nil)
		f.catalog.EXPECT().GetUpsells(gomock.Any(), []string{"social", "retired"}).
			Return([]models.Upsell{{ID: "social", Credits: 6}}, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"selected_upsells"}, validation.Fields)
	})

	t.Run("submission already in progress", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.redis.EXPECT().SetNX(gomock.Any(), "vacancy:v1:submit", gomock.Any(), submitLockTTL).Return(false, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		assert.ErrorIs(t, err, pkgerrors.ErrSubmissionInProgress)
	})

	t.Run("other employer", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		v := readyVacancy()
		v.EmployerID = "e2"
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		assert.ErrorIs(t, err, pkgerrors.ErrForbidden)
	})

	t.Run("already published", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		v := readyVacancy()
		v.Status = models.VacancyPublished
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		_, err := f.service.Submit(ctx, "e1", "u1", "v1")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidStatus)
	})
}

func TestVacancyService_Republish(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		closing *time.Time
		status  models.VacancyStatus
		wantErr error
	}{
		{"closing today", ptr(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)), models.VacancyUnpublished, pkgerrors.ErrClosingDateNotInFuture},
		{"closing yesterday", ptr(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)), models.VacancyUnpublished, pkgerrors.ErrClosingDateNotInFuture},
		{"no closing date", nil, models.VacancyUnpublished, pkgerrors.ErrClosingDateNotInFuture},
		{"not unpublished", ptr(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)), models.VacancyExpired, pkgerrors.ErrInvalidStatus},
		{"closing tomorrow", ptr(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)), models.VacancyUnpublished, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVacancyFixture(t)
			v := readyVacancy()
			v.Status = tt.status
			v.ClosingDate = tt.closing
			f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
			if tt.wantErr == nil {
				f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyPublished, nil, gomock.Not(gomock.Nil())).Return(nil)
				f.effects.producer.EXPECT().Send(gomock.Any(), gomock.Any(), "e1", gomock.Any()).Return(nil).Times(1)
				f.effects.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1).Do(func(_ context.Context, ev webhook.SyncEvent) {
					assert.Equal(t, models.EventVacancyRepublished, ev.Event)
					assert.Equal(t, "v1", ev.EntityID)
					assert.Equal(t, "e1", ev.EmployerID)
				})
			}

			got, err := f.service.Republish(ctx, "e1", "u1", "v1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.VacancyPublished, got.Status)
			assert.True(t, got.LastPublishedAt.Equal(fixedNow))
		})
	}
}

func TestVacancyService_EffectFailuresDoNotFailTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("republish", func(t *testing.T) {
		f := newVacancyFixture(t)
		v := readyVacancy()
		v.Status = models.VacancyUnpublished
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
		f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyPublished, nil, gomock.Not(gomock.Nil())).Return(nil)
		f.effects.producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka: leader not available"))
		f.effects.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)

		got, err := f.service.Republish(ctx, "e1", "u1", "v1")
		require.NoError(t, err)
		assert.Equal(t, models.VacancyPublished, got.Status)
	})

	t.Run("submit", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.expectLock("v1")
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(readyVacancy(), nil)
		f.expectPricing()
		f.expectWallet(20)
		f.wallets.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(nil)
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return("t1", nil)
		f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyAwaitingApproval, gomock.Any(), nil).Return(nil)
		f.effects.producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("kafka: leader not available")).AnyTimes()
		f.effects.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1).Do(func(_ context.Context, ev webhook.SyncEvent) {
			assert.Equal(t, models.EventVacancySubmitted, ev.Event)
			assert.Equal(t, "v1", ev.EntityID)
		})

		result, err := f.service.Submit(ctx, "e1", "u1", "v1")
		require.NoError(t, err)
		assert.Equal(t, models.VacancyAwaitingApproval, result.Status)
		assert.Equal(t, int64(4), result.Balance)
	})
}

func TestVacancyService_Unpublish(t *testing.T) {
	ctx := context.Background()

	t.Run("published", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.producer.EXPECT().Send(gomock.Any(), gomock.Any(), "e1", gomock.Any()).Return(nil)
		f.effects.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev webhook.SyncEvent) {
			assert.Equal(t, models.EventVacancyUnpublished, ev.Event)
			assert.Equal(t, "v1", ev.EntityID)
		})
		v := readyVacancy()
		v.Status = models.VacancyPublished
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
		f.vacancies.EXPECT().UpdateStatus(gomock.Any(), "v1", models.VacancyUnpublished, nil, nil).Return(nil)

		got, err := f.service.Unpublish(ctx, "e1", "u1", "v1")
		require.NoError(t, err)
		assert.Equal(t, models.VacancyUnpublished, got.Status)
	})

	t.Run("concept", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(readyVacancy(), nil)

		_, err := f.service.Unpublish(ctx, "e1", "u1", "v1")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidStatus)
	})
}

func TestVacancyService_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("create concept", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.allowAll()
		f.vacancies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *models.Vacancy) error {
			v.ID = "v9"
			return nil
		})

		v, err := f.service.Create(ctx, "e1", "u1", models.VacancyInput{
			Title:           ptr(" Kok "),
			SelectedUpsells: ptr([]string{"social", "social", ""}),
			ClosingDate:     ptr("2026-12-01"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.VacancyConcept, v.Status)
		assert.Equal(t, models.InputSelfService, v.InputType)
		assert.Equal(t, "Kok", v.Title)
		assert.Equal(t, []string{"social"}, v.SelectedUpsells)
		assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), *v.ClosingDate)
	})

	t.Run("create rejects invalid input", func(t *testing.T) {
		f := newVacancyFixture(t)

		_, err := f.service.Create(ctx, "e1", "u1", models.VacancyInput{
			InputType:    ptr(models.InputType("fax")),
			HoursPerWeek: ptr(200),
			ClosingDate:  ptr("19-10-2026"),
		})
		var validation *pkgerrors.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, []string{"input_type", "hours_per_week", "closing_date"}, validation.Fields)
	})

	t.Run("update awaiting approval is rejected", func(t *testing.T) {
		f := newVacancyFixture(t)
		v := readyVacancy()
		v.Status = models.VacancyAwaitingApproval
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		_, err := f.service.Update(ctx, "e1", "u1", "v1", models.VacancyInput{Title: ptr("Nieuw")})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidStatus)
	})

	t.Run("update needs adjustment", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.allowAll()
		v := readyVacancy()
		v.Status = models.VacancyNeedsAdjustment
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)
		f.vacancies.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		got, err := f.service.Update(ctx, "e1", "u1", "v1", models.VacancyInput{SalaryMin: ptr(3000), SalaryMax: ptr(4500)})
		require.NoError(t, err)
		assert.Equal(t, 3000, got.SalaryMin)
		assert.Equal(t, "Backend developer", got.Title)
	})

	t.Run("delete concept", func(t *testing.T) {
		f := newVacancyFixture(t)
		f.effects.allowAll()
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(readyVacancy(), nil)
		f.vacancies.EXPECT().Delete(gomock.Any(), "v1").Return(nil)

		assert.NoError(t, f.service.Delete(ctx, "e1", "u1", "v1"))
	})

	t.Run("delete published is rejected", func(t *testing.T) {
		f := newVacancyFixture(t)
		v := readyVacancy()
		v.Status = models.VacancyPublished
		f.vacancies.EXPECT().GetByID(gomock.Any(), "v1").Return(v, nil)

		assert.ErrorIs(t, f.service.Delete(ctx, "e1", "u1", "v1"), pkgerrors.ErrInvalidStatus)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		f := newVacancyFixture(t)

		_, err := f.service.List(ctx, "e1", "archived")
		var validation *pkgerrors.ValidationError
		assert.True(t, errors.As(err, &validation))
	})
}

func TestAfterToday(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	assert.False(t, afterToday(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, afterToday(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, afterToday(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), now))

	amsterdam := time.FixedZone("CEST", 2*60*60)
	pastMidnight := time.Date(2026, 10, 20, 1, 0, 0, 0, amsterdam)
	assert.True(t, afterToday(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), pastMidnight))
	assert.False(t, afterToday(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), pastMidnight))
}
