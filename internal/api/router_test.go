package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/honeynil/employer-dashboard/internal/handler"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/auth"
	redismocks "github.com/honeynil/employer-dashboard/internal/infrastructure/redis/mocks"
	"github.com/honeynil/employer-dashboard/internal/models"
	servicemocks "github.com/honeynil/employer-dashboard/internal/services/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := auth.NewTokenManager("router-secret", time.Hour)
	redisClient := redismocks.NewMockRedisClient(ctrl)
	wallets := servicemocks.NewMockWalletService(ctrl)
	catalog := servicemocks.NewMockCatalogService(ctrl)
	h := handler.NewHandler(
		servicemocks.NewMockAuthService(ctrl),
		servicemocks.NewMockAccountService(ctrl),
		wallets,
		servicemocks.NewMockVacancyService(ctrl),
		servicemocks.NewMockMediaService(ctrl),
		catalog,
		1<<20,
	)
	router := SetupRouter(h, tokens, redisClient)

	serve := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("healthz", func(t *testing.T) {
		rec := serve(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("public catalog", func(t *testing.T) {
		catalog.EXPECT().Catalog(gomock.Any()).Return(&models.Catalog{}, nil)

		rec := serve(http.MethodGet, "/catalog", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		rec := serve(http.MethodGet, "/wallet", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
	})

	t.Run("protected route with live session", func(t *testing.T) {
		token, _, err := tokens.Issue(&models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive})
		require.NoError(t, err)
		redisClient.EXPECT().Get(gomock.Any(), "session:u1").Return(token, nil)
		wallets.EXPECT().GetForEmployer(gomock.Any(), "e1").Return(&models.Wallet{ID: "w1", Balance: 7}, nil)

		rec := serve(http.MethodGet, "/wallet", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"balance":7`)
	})

	t.Run("revoked session", func(t *testing.T) {
		token, _, err := tokens.Issue(&models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive})
		require.NoError(t, err)
		redisClient.EXPECT().Get(gomock.Any(), "session:u1").Return("newer-token", nil)

		rec := serve(http.MethodGet, "/wallet", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"invalid_token"`)
	})

	t.Run("session store unavailable", func(t *testing.T) {
		token, _, err := tokens.Issue(&models.User{ID: "u1", EmployerID: "e1", Status: models.UserStatusActive})
		require.NoError(t, err)
		redisClient.EXPECT().Get(gomock.Any(), "session:u1").Return("", errors.New("dial tcp 127.0.0.1:6379: connection refused"))

		rec := serve(http.MethodGet, "/wallet", token)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"internal_error"`)
	})

	t.Run("metrics stay off the public port", func(t *testing.T) {
		rec := serve(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("requests are counted by route template", func(t *testing.T) {
		before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/healthz", "200"))
		serve(http.MethodGet, "/healthz", "")
		after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/healthz", "200"))
		assert.Equal(t, before+1, after)
	})

	t.Run("unknown path", func(t *testing.T) {
		rec := serve(http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
