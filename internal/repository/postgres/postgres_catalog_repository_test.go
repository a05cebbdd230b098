package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/employer-dashboard/internal/models"
	repository "github.com/honeynil/employer-dashboard/internal/repository/postgres"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPostgresCatalogRepository_GetPackage(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresCatalogRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM packages`)).
			WithArgs("basic").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits", "duration_days"}).AddRow("basic", "Basis", int64(10), int64(30)))

		p, err := repo.GetPackage(ctx, "basic")
		assert.NoError(t, err)
		assert.Equal(t, &models.Package{ID: "basic", Name: "Basis", Credits: 10, DurationDays: 30}, p)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM packages`)).
			WithArgs("gone").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetPackage(ctx, "gone")
		assert.ErrorIs(t, err, pkgerrors.ErrPackageNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCatalogRepository_GetUpsells(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresCatalogRepository(db)
	ctx := context.Background()

	t.Run("NoIDsSkipsQuery", func(t *testing.T) {
		upsells, err := repo.GetUpsells(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, upsells)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, credits FROM upsells WHERE id = ANY($1) AND active`)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}).
				AddRow("social", "Social boost", int64(4)).
				AddRow("top", "Topvacature", int64(2)))

		upsells, err := repo.GetUpsells(ctx, []string{"social", "top"})
		assert.NoError(t, err)
		assert.Len(t, upsells, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCatalogRepository_GetBundle(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM credit_bundles WHERE id = $1 AND active`)).
		WithArgs("b50").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits", "price"}).AddRow("b50", "50 credits", int64(50), "449.00"))

	b, err := repo.GetBundle(context.Background(), "b50")
	assert.NoError(t, err)
	assert.Equal(t, int64(50), b.Credits)
	assert.True(t, b.Price.Equal(decimal.RequireFromString("449")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalogRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresCatalogRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM packages WHERE active`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits", "duration_days"}).AddRow("basic", "Basis", int64(10), int64(30)))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM upsells WHERE active`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM credit_bundles WHERE active`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits", "price"}).AddRow("b10", "10 credits", int64(10), "99.00"))

		catalog, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, catalog.Packages, 1)
		assert.Empty(t, catalog.Upsells)
		assert.NotNil(t, catalog.Upsells)
		assert.Len(t, catalog.Bundles, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM packages WHERE active`)).
			WillReturnError(fmt.Errorf("database error"))

		_, err := repo.List(ctx)
		assert.Contains(t, err.Error(), "failed to query catalog")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("WithMetadata", func(t *testing.T) {
		event := &models.Event{
			ID: "ev1", EmployerID: "e1", UserID: "u1", EventType: models.EventVacancySubmitted,
			EntityType: "vacancy", EntityID: "v1", Metadata: json.RawMessage(`{"credits":16}`), CreatedAt: now,
		}
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO event_log`)).
			WithArgs("ev1", "e1", "u1", "vacancy_submitted", "vacancy", "v1", `{"credits":16}`, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AnonymousWithoutMetadata", func(t *testing.T) {
		event := &models.Event{EventType: models.EventUserSignedUp, EntityType: "user", EntityID: "u1", CreatedAt: now}
		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO NOTHING`)).
			WithArgs(sqlmock.AnyArg(), nil, nil, "user_signed_up", "user", "u1", nil, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, event))
		assert.NotEmpty(t, event.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
