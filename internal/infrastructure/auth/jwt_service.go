package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

type Claims struct {
	UserID     string            `json:"user_id"`
	EmployerID string            `json:"employer_id,omitempty"`
	Status     models.UserStatus `json:"status"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates dashboard session tokens (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(user *models.User) (string, models.Session, error) {
	if len(m.secret) == 0 {
		return "", models.Session{}, fmt.Errorf("JWT secret not set")
	}
	if user == nil {
		return "", models.Session{}, pkgerrors.ErrNilUser
	}

	now := m.now()
	session := models.Session{
		UserID:     user.ID,
		EmployerID: user.EmployerID,
		Status:     user.Status,
		ExpiresAt:  now.Add(m.ttl).Truncate(time.Second),
	}
	claims := Claims{
		UserID:     session.UserID,
		EmployerID: session.EmployerID,
		Status:     session.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, session, nil
}

func (m *TokenManager) Parse(tokenStr string) (*models.Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", pkgerrors.ErrInvalidToken)
	}

	session := &models.Session{
		UserID:     claims.UserID,
		EmployerID: claims.EmployerID,
		Status:     claims.Status,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// SessionKey is the Redis key holding the user's current token.
func SessionKey(userID string) string {
	return "session:" + userID
}
