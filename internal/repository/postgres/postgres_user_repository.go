package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, _, done := startCall(ctx, "user-repository", "CreateUser")
	defer func() { done(err) }()

	if user == nil {
		err = pkgerrors.ErrNilUser
		return err
	}
	if user.Email == "" {
		err = fmt.Errorf("email is required: %w", pkgerrors.ErrInvalidInput)
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Status == "" {
		user.Status = models.UserStatusPendingOnboarding
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	query := `INSERT INTO users (id, email, name, status) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Name, user.Status).Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		err = pkgerrors.ErrUserExists
		return err
	}
	if err != nil {
		slog.Error("failed to create user", "method", "Create", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "method", "Create", "user_id", user.ID)
	return nil
}

const userColumns = `id, email, name, status, employer_id, role_id, created_at`

func (r *PostgresUserRepository) scanOne(ctx context.Context, query, arg string) (*models.User, error) {
	var (
		user       models.User
		employerID sql.NullString
		roleID     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Status,
		&employerID,
		&roleID,
		&user.CreatedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, pkgerrors.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.EmployerID = employerID.String
	user.RoleID = roleID.String
	return &user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (user *models.User, err error) {
	ctx, _, done := startCall(ctx, "user-repository", "GetUserByID")
	defer func() { done(err) }()

	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	ctx, _, done := startCall(ctx, "user-repository", "GetUserByEmail")
	defer func() { done(err) }()

	if email == "" {
		err = fmt.Errorf("email cannot be empty: %w", pkgerrors.ErrInvalidInput)
		return nil, err
	}
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresUserRepository) Activate(ctx context.Context, userID, employerID, roleID string) (err error) {
	ctx, _, done := startCall(ctx, "user-repository", "ActivateUser")
	defer func() { done(err) }()

	query := `UPDATE users SET status = $2, employer_id = $3, role_id = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, models.UserStatusActive, employerID, nullString(roleID))
	if err != nil {
		slog.Error("failed to activate user", "method", "Activate", "user_id", userID, "error", err)
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrUserNotFound
		return err
	}

	slog.Info("user activated", "method", "Activate", "user_id", userID, "employer_id", employerID)
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, _, done := startCall(ctx, "user-repository", "DeleteUser")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = pkgerrors.ErrUserNotFound
		return err
	}
	return nil
}
