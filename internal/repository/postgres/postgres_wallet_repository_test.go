package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/employer-dashboard/internal/models"
	repository "github.com/honeynil/employer-dashboard/internal/repository/postgres"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var walletRow = []string{"id", "owner_id", "balance", "total_purchased", "total_spent", "version", "updated_at"}

func TestPostgresWalletRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresWalletRepository(db)
	ctx := context.Background()

	t.Run("NilWallet", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.ErrorIs(t, err, pkgerrors.ErrNilWallet)
	})

	t.Run("Success", func(t *testing.T) {
		wallet := &models.Wallet{ID: "w1", OwnerID: "e1"}
		updatedAt := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets (id, owner_id, balance, total_purchased, total_spent, version)`)).
			WithArgs("w1", "e1", int64(0), int64(0), int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(1), updatedAt))

		err := repo.Create(ctx, wallet)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), wallet.Version)
		assert.Equal(t, updatedAt, wallet.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		wallet := &models.Wallet{ID: "w2", OwnerID: "e1"}
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets`)).
			WithArgs("w2", "e1", int64(0), int64(0), int64(0)).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, wallet)
		assert.ErrorIs(t, err, pkgerrors.ErrWalletExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GeneratesID", func(t *testing.T) {
		wallet := &models.Wallet{OwnerID: "e3"}
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets`)).
			WithArgs(sqlmock.AnyArg(), "e3", int64(0), int64(0), int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(1), time.Now()))

		assert.NoError(t, repo.Create(ctx, wallet))
		assert.NotEmpty(t, wallet.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWalletRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresWalletRepository(db)
	ctx := context.Background()

	t.Run("ByID", func(t *testing.T) {
		updatedAt := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE id = $1`)).
			WithArgs("w1").
			WillReturnRows(sqlmock.NewRows(walletRow).AddRow("w1", "e1", int64(4), int64(20), int64(16), int64(3), updatedAt))

		wallet, err := repo.GetByID(ctx, "w1")
		assert.NoError(t, err)
		assert.Equal(t, &models.Wallet{
			ID: "w1", OwnerID: "e1", Balance: 4, TotalPurchased: 20, TotalSpent: 16, Version: 3, UpdatedAt: updatedAt,
		}, wallet)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ByOwnerNotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE owner_id = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		wallet, err := repo.GetByOwner(ctx, "missing")
		assert.Nil(t, wallet)
		assert.ErrorIs(t, err, pkgerrors.ErrWalletNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE id = $1`)).
			WithArgs("w1").
			WillReturnError(fmt.Errorf("database error"))

		wallet, err := repo.GetByID(ctx, "w1")
		assert.Nil(t, wallet)
		assert.Contains(t, err.Error(), "failed to get wallet")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWalletRepository_UpdateBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresWalletRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		wallet := &models.Wallet{ID: "w1", Balance: 4, TotalPurchased: 20, TotalSpent: 16, Version: 2}
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE wallets SET balance = $1, total_purchased = $2, total_spent = $3, version = version + 1`)).
			WithArgs(int64(4), int64(20), int64(16), "w1", int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(3), time.Now()))

		err := repo.UpdateBalance(ctx, wallet)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), wallet.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleVersion", func(t *testing.T) {
		wallet := &models.Wallet{ID: "w1", Balance: 0, TotalPurchased: 20, TotalSpent: 20, Version: 2}
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE wallets SET`)).
			WithArgs(int64(0), int64(20), int64(20), "w1", int64(2)).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateBalance(ctx, wallet)
		assert.ErrorIs(t, err, pkgerrors.ErrConcurrentUpdate)
		assert.Equal(t, int64(2), wallet.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWalletRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresWalletRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM wallets WHERE id = $1`)).
			WithArgs("w1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "w1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM wallets WHERE id = $1`)).
			WithArgs("w9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "w9"), pkgerrors.ErrWalletNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
