package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/auth"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/mailer"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/redis"
	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

const userLookupAttempts = 3

type AuthService interface {
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, email, token string) (*models.LoginResult, error)
	IssueSession(ctx context.Context, user *models.User) (*models.LoginResult, error)
	Logout(ctx context.Context, userID string) error
}

type MagicLinkConfig struct {
	BaseURL    string
	TTL        time.Duration
	RateLimit  int64
	RateWindow time.Duration
}

type authService struct {
	userRepo    repository.UserRepository
	redisClient redis.RedisClient
	tokens      *auth.TokenManager
	mailer      mailer.Mailer
	effects     *Effects
	cfg         MagicLinkConfig
	bcryptCost  int
	retryDelay  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	redisClient redis.RedisClient,
	tokens *auth.TokenManager,
	mailer mailer.Mailer,
	effects *Effects,
	cfg MagicLinkConfig,
) *authService {
	return &authService{
		userRepo:    userRepo,
		redisClient: redisClient,
		tokens:      tokens,
		mailer:      mailer,
		effects:     effects,
		cfg:         cfg,
		bcryptCost:  bcrypt.DefaultCost,
		retryDelay:  200 * time.Millisecond,
	}
}

func magicLinkKey(email string) string {
	return "magic:" + email
}

func rateLimitKey(email string) string {
	return "ratelimit:magic:" + email
}

// RequestMagicLink mails a one-time login link, creating the user on first
// contact. Only a bcrypt hash of the token is kept.
func (s *authService) RequestMagicLink(ctx context.Context, email string) error {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "RequestMagicLink")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		span.SetStatus(codes.Error, "invalid email")
		return err
	}

	count, err := s.redisClient.Incr(ctx, rateLimitKey(email), s.cfg.RateWindow)
	if err != nil {
		// Fail open: a Redis hiccup should not lock people out.
		slog.Warn("rate limit check failed", "email", email, "error", err)
	} else if count > s.cfg.RateLimit {
		span.SetStatus(codes.Error, "rate limited")
		slog.Warn("magic link rate limited", "email", email, "count", count)
		return pkgerrors.ErrRateLimited
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if stderrors.Is(err, pkgerrors.ErrUserNotFound) {
		user = &models.User{Email: email, Status: models.UserStatusPendingOnboarding}
		if err := s.userRepo.Create(ctx, user); err != nil && !stderrors.Is(err, pkgerrors.ErrUserExists) {
			span.RecordError(err)
			return err
		}
		s.effects.record(ctx, eventSpec{
			eventType: models.EventUserSignedUp, userID: user.ID,
			entityType: "user", entityID: user.ID,
		})
	} else if err != nil {
		span.RecordError(err)
		return err
	}

	token, err := randomToken()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: failed to generate token", pkgerrors.ErrInternal)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), s.bcryptCost)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: failed to hash token", pkgerrors.ErrInternal)
	}
	if err := s.redisClient.Set(ctx, magicLinkKey(email), string(hash), s.cfg.TTL); err != nil {
		span.RecordError(err)
		slog.Error("failed to store magic link", "email", email, "error", err)
		return fmt.Errorf("failed to store magic link: %w", err)
	}

	if err := s.mailer.SendMagicLink(ctx, email, s.link(email, token)); err != nil {
		span.RecordError(err)
		return err
	}

	slog.Info("magic link requested", "user_id", user.ID)
	return nil
}

// VerifyMagicLink consumes the token and starts a session. The user row may
// lag behind the link request, so the lookup is retried a few times.
func (s *authService) VerifyMagicLink(ctx context.Context, email, token string) (*models.LoginResult, error) {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "VerifyMagicLink")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, pkgerrors.ErrInvalidToken
	}

	hash, err := s.redisClient.Get(ctx, magicLinkKey(email))
	if stderrors.Is(err, redis.ErrKeyNotFound) {
		span.SetStatus(codes.Error, "no pending link")
		return nil, pkgerrors.ErrInvalidToken
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read magic link: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		span.SetStatus(codes.Error, "token mismatch")
		slog.Warn("magic link token mismatch", "email", email)
		return nil, pkgerrors.ErrInvalidToken
	}
	if err := s.redisClient.Del(ctx, magicLinkKey(email)); err != nil {
		slog.Warn("failed to consume magic link", "email", email, "error", err)
	}

	user, err := s.lookupUser(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result, err := s.IssueSession(ctx, user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventUserLoggedIn, employerID: user.EmployerID, userID: user.ID,
		entityType: "user", entityID: user.ID,
	})
	slog.Info("user logged in", "user_id", user.ID, "status", user.Status)
	return result, nil
}

func (s *authService) lookupUser(ctx context.Context, email string) (*models.User, error) {
	var err error
	for attempt := 0; attempt < userLookupAttempts; attempt++ {
		var user *models.User
		user, err = s.userRepo.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !stderrors.Is(err, pkgerrors.ErrUserNotFound) {
			return nil, err
		}
		if attempt < userLookupAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(attempt+1)):
			}
		}
	}
	slog.Error("user not found after magic link verification", "email", email, "attempts", userLookupAttempts)
	return nil, err
}

// IssueSession signs a token for user and makes it the user's only valid
// session.
func (s *authService) IssueSession(ctx context.Context, user *models.User) (*models.LoginResult, error) {
	token, session, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.redisClient.Set(ctx, auth.SessionKey(user.ID), token, s.tokens.TTL()); err != nil {
		slog.Error("failed to store session", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &models.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "Logout")
	defer span.End()

	if err := s.redisClient.Del(ctx, auth.SessionKey(userID)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	slog.Info("user logged out", "user_id", userID)
	return nil
}

func (s *authService) link(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	sep := "?"
	if strings.Contains(s.cfg.BaseURL, "?") {
		sep = "&"
	}
	return s.cfg.BaseURL + sep + q.Encode()
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", pkgerrors.NewValidationError("email")
	}
	return email, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
