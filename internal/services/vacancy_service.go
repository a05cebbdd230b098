package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/redis"
	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	dateLayout       = "2006-01-02"
	submitLockTTL    = 30 * time.Second
	entityVacancy    = "vacancy"
	spendDescription = "Vacature ingediend"
)

type VacancyService interface {
	Create(ctx context.Context, employerID, userID string, in models.VacancyInput) (*models.Vacancy, error)
	Update(ctx context.Context, employerID, userID, vacancyID string, in models.VacancyInput) (*models.Vacancy, error)
	Get(ctx context.Context, employerID, vacancyID string) (*models.Vacancy, error)
	List(ctx context.Context, employerID string, status models.VacancyStatus) ([]models.Vacancy, error)
	Delete(ctx context.Context, employerID, userID, vacancyID string) error
	Submit(ctx context.Context, employerID, userID, vacancyID string) (*models.SubmitResult, error)
	Republish(ctx context.Context, employerID, userID, vacancyID string) (*models.Vacancy, error)
	Unpublish(ctx context.Context, employerID, userID, vacancyID string) (*models.Vacancy, error)
}

type vacancyService struct {
	vacancyRepo     repository.VacancyRepository
	catalogRepo     repository.CatalogRepository
	transactionRepo repository.TransactionRepository
	wallets         WalletService
	redisClient     redis.RedisClient
	effects         *Effects
	now             func() time.Time
}

func NewVacancyService(
	vacancyRepo repository.VacancyRepository,
	catalogRepo repository.CatalogRepository,
	transactionRepo repository.TransactionRepository,
	wallets WalletService,
	redisClient redis.RedisClient,
	effects *Effects,
) *vacancyService {
	return &vacancyService{
		vacancyRepo:     vacancyRepo,
		catalogRepo:     catalogRepo,
		transactionRepo: transactionRepo,
		wallets:         wallets,
		redisClient:     redisClient,
		effects:         effects,
		now:             time.Now,
	}
}

func (s *vacancyService) Create(ctx context.Context, employerID, userID string, in models.VacancyInput) (*models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Create")
	defer span.End()

	v := &models.Vacancy{
		EmployerID:      employerID,
		Status:          models.VacancyConcept,
		InputType:       models.InputSelfService,
		SelectedUpsells: []string{},
	}
	if err := applyVacancyInput(v, in); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}

	if err := s.vacancyRepo.Create(ctx, v); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancyCreated, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: v.ID,
		metadata: map[string]any{"input_type": v.InputType},
	})
	return v, nil
}

func (s *vacancyService) Update(ctx context.Context, employerID, userID, vacancyID string, in models.VacancyInput) (*models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Update")
	defer span.End()

	v, err := s.loadOwned(ctx, employerID, vacancyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !v.Status.Editable() {
		span.SetStatus(codes.Error, "not editable")
		return nil, fmt.Errorf("%w: vacancy is %s", pkgerrors.ErrInvalidStatus, v.Status)
	}
	if err := applyVacancyInput(v, in); err != nil {
		return nil, err
	}

	if err := s.vacancyRepo.Update(ctx, v); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancyUpdated, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: v.ID,
	})
	return v, nil
}

func (s *vacancyService) Get(ctx context.Context, employerID, vacancyID string) (*models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Get")
	defer span.End()

	return s.loadOwned(ctx, employerID, vacancyID)
}

func (s *vacancyService) List(ctx context.Context, employerID string, status models.VacancyStatus) ([]models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "List")
	defer span.End()

	if status != "" && !status.Valid() {
		return nil, pkgerrors.NewValidationError("status")
	}
	return s.vacancyRepo.ListByEmployer(ctx, employerID, status)
}

func (s *vacancyService) Delete(ctx context.Context, employerID, userID, vacancyID string) error {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Delete")
	defer span.End()

	v, err := s.loadOwned(ctx, employerID, vacancyID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if v.Status != models.VacancyConcept {
		return fmt.Errorf("%w: only concept vacancies can be deleted", pkgerrors.ErrInvalidStatus)
	}
	if err := s.vacancyRepo.Delete(ctx, vacancyID); err != nil {
		span.RecordError(err)
		return err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancyDeleted, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: vacancyID,
	})
	return nil
}

// Submit sends a vacancy for approval. A concept is charged package plus
// upsell credits; a resubmission after needs_adjustment is free. Once credits
// are deducted later failures are not compensated.
func (s *vacancyService) Submit(ctx context.Context, employerID, userID, vacancyID string) (*models.SubmitResult, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(attribute.String("vacancy_id", vacancyID), attribute.String("employer_id", employerID))

	lockKey := fmt.Sprintf("vacancy:%s:submit", vacancyID)
	ok, err := s.redisClient.SetNX(ctx, lockKey, userID, submitLockTTL)
	if err != nil {
		span.RecordError(err)
		slog.Error("failed to acquire submit lock", "vacancy_id", vacancyID, "error", err)
		return nil, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	if !ok {
		span.SetStatus(codes.Error, "submission in progress")
		return nil, pkgerrors.ErrSubmissionInProgress
	}
	defer func() {
		if err := s.redisClient.Del(context.WithoutCancel(ctx), lockKey); err != nil {
			slog.Warn("failed to release submit lock", "vacancy_id", vacancyID, "error", err)
		}
	}()

	v, err := s.loadOwned(ctx, employerID, vacancyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var resubmission bool
	switch v.Status {
	case models.VacancyConcept:
	case models.VacancyNeedsAdjustment:
		resubmission = true
	default:
		span.SetStatus(codes.Error, "invalid status")
		return nil, fmt.Errorf("%w: cannot submit a %s vacancy", pkgerrors.ErrInvalidStatus, v.Status)
	}

	if missing := missingSubmitFields(v, s.now()); len(missing) > 0 {
		span.SetStatus(codes.Error, "validation failed")
		slog.Info("submission rejected", "vacancy_id", vacancyID, "fields", missing)
		return nil, pkgerrors.NewValidationError(missing...)
	}

	cost, err := s.price(ctx, v)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	wallet, err := s.wallets.GetForEmployer(ctx, employerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &models.SubmitResult{VacancyID: v.ID, Balance: wallet.Balance}
	if !resubmission {
		wallet, err = s.wallets.Deduct(ctx, wallet.ID, cost)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		result.CreditsSpent = cost
		result.Balance = wallet.Balance

		txID, err := s.transactionRepo.Create(ctx, &models.Transaction{
			WalletID:      wallet.ID,
			EmployerID:    employerID,
			VacancyID:     v.ID,
			Type:          models.TypeSpend,
			Status:        models.StatusCompleted,
			CreditsAmount: cost,
			Description:   spendDescription,
		})
		if err != nil {
			span.RecordError(err)
			slog.Error("credits deducted but spend transaction not recorded", "vacancy_id", v.ID, "wallet_id", wallet.ID, "credits", cost, "error", err)
			return nil, fmt.Errorf("failed to record spend: %w", err)
		}
		result.TransactionID = txID
	}

	submittedAt := s.now().UTC()
	if err := s.vacancyRepo.UpdateStatus(ctx, v.ID, models.VacancyAwaitingApproval, &submittedAt, nil); err != nil {
		span.RecordError(err)
		slog.Error("credits deducted but vacancy status not updated", "vacancy_id", v.ID, "credits", result.CreditsSpent, "error", err)
		return nil, err
	}
	result.Status = models.VacancyAwaitingApproval
	observability.VacancyTransitions.WithLabelValues(string(models.VacancyAwaitingApproval)).Inc()

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancySubmitted, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: v.ID,
		metadata: map[string]any{"credits": result.CreditsSpent, "resubmission": resubmission, "package_id": v.PackageID},
	})
	s.effects.sync(ctx, models.EventVacancySubmitted, entityVacancy, v.ID, employerID)

	slog.Info("vacancy submitted", "vacancy_id", v.ID, "employer_id", employerID, "credits", result.CreditsSpent, "balance", result.Balance)
	return result, nil
}

func (s *vacancyService) Republish(ctx context.Context, employerID, userID, vacancyID string) (*models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Republish")
	defer span.End()

	v, err := s.loadOwned(ctx, employerID, vacancyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if v.Status != models.VacancyUnpublished {
		return nil, fmt.Errorf("%w: only unpublished vacancies can be republished", pkgerrors.ErrInvalidStatus)
	}
	if v.ClosingDate == nil || !afterToday(*v.ClosingDate, s.now()) {
		span.SetStatus(codes.Error, "closing date passed")
		return nil, pkgerrors.ErrClosingDateNotInFuture
	}

	publishedAt := s.now().UTC()
	if err := s.vacancyRepo.UpdateStatus(ctx, v.ID, models.VacancyPublished, nil, &publishedAt); err != nil {
		span.RecordError(err)
		return nil, err
	}
	v.Status = models.VacancyPublished
	v.LastPublishedAt = &publishedAt
	observability.VacancyTransitions.WithLabelValues(string(models.VacancyPublished)).Inc()

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancyRepublished, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: v.ID,
	})
	s.effects.sync(ctx, models.EventVacancyRepublished, entityVacancy, v.ID, employerID)
	return v, nil
}

func (s *vacancyService) Unpublish(ctx context.Context, employerID, userID, vacancyID string) (*models.Vacancy, error) {
	ctx, span := otel.Tracer("vacancy-service").Start(ctx, "Unpublish")
	defer span.End()

	v, err := s.loadOwned(ctx, employerID, vacancyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if v.Status != models.VacancyPublished {
		return nil, fmt.Errorf("%w: only published vacancies can be unpublished", pkgerrors.ErrInvalidStatus)
	}

	if err := s.vacancyRepo.UpdateStatus(ctx, v.ID, models.VacancyUnpublished, nil, nil); err != nil {
		span.RecordError(err)
		return nil, err
	}
	v.Status = models.VacancyUnpublished
	observability.VacancyTransitions.WithLabelValues(string(models.VacancyUnpublished)).Inc()

	s.effects.record(ctx, eventSpec{
		eventType: models.EventVacancyUnpublished, employerID: employerID, userID: userID,
		entityType: entityVacancy, entityID: v.ID,
	})
	s.effects.sync(ctx, models.EventVacancyUnpublished, entityVacancy, v.ID, employerID)
	return v, nil
}

func (s *vacancyService) loadOwned(ctx context.Context, employerID, vacancyID string) (*models.Vacancy, error) {
	v, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if v.EmployerID != employerID {
		slog.Warn("vacancy access denied", "vacancy_id", vacancyID, "employer_id", employerID)
		return nil, pkgerrors.ErrForbidden
	}
	return v, nil
}

// price is the package credits plus every selected upsell.
func (s *vacancyService) price(ctx context.Context, v *models.Vacancy) (int64, error) {
	pkg, err := s.catalogRepo.GetPackage(ctx, v.PackageID)
	if stderrors.Is(err, pkgerrors.ErrPackageNotFound) {
		return 0, pkgerrors.NewValidationError("package_id")
	}
	if err != nil {
		return 0, err
	}

	ids := uniqueStrings(v.SelectedUpsells)
	upsells, err := s.catalogRepo.GetUpsells(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(upsells) != len(ids) {
		return 0, pkgerrors.NewValidationError("selected_upsells")
	}

	cost := pkg.Credits
	for _, u := range upsells {
		cost += u.Credits
	}
	return cost, nil
}

func missingSubmitFields(v *models.Vacancy, now time.Time) []string {
	var missing []string
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}

	require("title", v.Title)
	switch v.InputType {
	case models.InputWeDoItForYou:
		require("intake_notes", v.IntakeNotes)
	default:
		require("description", v.Description)
		require("location", v.Location)
		require("employment_type", v.EmploymentType)
		if v.ClosingDate == nil || !afterToday(*v.ClosingDate, now) {
			missing = append(missing, "closing_date")
		}
		require("application_url", v.ApplicationURL)
	}
	require("package_id", v.PackageID)
	return missing
}

// afterToday compares UTC calendar dates: a closing date of today is not in
// the future.
func afterToday(closing, now time.Time) bool {
	y, m, d := closing.UTC().Date()
	closingDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return closingDay.After(today)
}

func applyVacancyInput(v *models.Vacancy, in models.VacancyInput) error {
	var invalid []string

	if in.InputType != nil {
		if !in.InputType.Valid() {
			invalid = append(invalid, "input_type")
		} else {
			v.InputType = *in.InputType
		}
	}
	setString(&v.PackageID, in.PackageID)
	if in.SelectedUpsells != nil {
		v.SelectedUpsells = uniqueStrings(*in.SelectedUpsells)
	}
	setString(&v.Title, in.Title)
	setString(&v.Description, in.Description)
	setString(&v.Location, in.Location)
	setString(&v.EmploymentType, in.EmploymentType)
	setString(&v.ApplicationURL, in.ApplicationURL)
	setString(&v.ContactEmail, in.ContactEmail)
	setString(&v.IntakeNotes, in.IntakeNotes)

	if in.HoursPerWeek != nil {
		if *in.HoursPerWeek < 0 || *in.HoursPerWeek > 168 {
			invalid = append(invalid, "hours_per_week")
		} else {
			v.HoursPerWeek = *in.HoursPerWeek
		}
	}
	if in.SalaryMin != nil {
		v.SalaryMin = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		v.SalaryMax = *in.SalaryMax
	}
	if v.SalaryMin < 0 || (v.SalaryMax > 0 && v.SalaryMin > v.SalaryMax) {
		invalid = append(invalid, "salary_min")
	}

	if in.ClosingDate != nil {
		if *in.ClosingDate == "" {
			v.ClosingDate = nil
		} else if d, err := time.Parse(dateLayout, *in.ClosingDate); err != nil {
			invalid = append(invalid, "closing_date")
		} else {
			v.ClosingDate = &d
		}
	}

	if len(invalid) > 0 {
		return pkgerrors.NewValidationError(invalid...)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
