package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"casting_backend/internal/auth"
	"casting_backend/internal/bot"
	"casting_backend/internal/config"
	"casting_backend/internal/models"
	"casting_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBotRouter поднимает маршруты бота поверх приложения без токена.
func newBotRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	botApp, err := bot.NewBotApp("", nil, nil, nil, nil, bot.NewSessionStore())
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api")
	NewBotHandler(NewBaseHandler(validator.New()), botApp).RegisterRoutes(api)
	return router
}

func superAdminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(1, "root@casting.uz", models.RoleSuperAdmin)
	require.NoError(t, err)
	return token
}

// Маршруты управления ботом должны существовать и без BOT_TOKEN:
// иначе /update-token никогда не сможет задать первый токен.
func TestBotRoutes_AvailableWithoutToken(t *testing.T) {
	router := newBotRouter(t)

	t.Run("webhook принимает апдейты", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bot/webhook", strings.NewReader(`{"update_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("info отвечает 503, а не 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bot/info", nil)
		req.Header.Set("Authorization", "Bearer "+superAdminToken(t))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "Set a valid token first")
	})

	t.Run("без авторизации управление закрыто", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bot/info", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
