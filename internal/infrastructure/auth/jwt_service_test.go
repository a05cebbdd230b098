package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	user := &models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive}
	token, session, err := m.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, session.Active())

	parsed, err := m.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, "e1", parsed.EmployerID)
	assert.Equal(t, models.UserStatusActive, parsed.Status)
	assert.True(t, session.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestTokenManager_PendingUser(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, _, err := m.Issue(&models.User{ID: "u2", Status: models.UserStatusPendingOnboarding})
	assert.NoError(t, err)

	session, err := m.Parse(token)
	assert.NoError(t, err)
	assert.False(t, session.Active())
	assert.Empty(t, session.EmployerID)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("other", time.Hour)
		token, _, err := other.Issue(&models.User{ID: "u1"})
		assert.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		past := NewTokenManager("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := past.Issue(&models.User{ID: "u1"})
		assert.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidToken)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidToken)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
		assert.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidToken)
	})

	t.Run("EmptySecret", func(t *testing.T) {
		_, _, err := NewTokenManager("", time.Hour).Issue(&models.User{ID: "u1"})
		assert.Error(t, err)
	})
}
