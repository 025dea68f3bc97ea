package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"casting_backend/internal/services/dto"
	"casting_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *BaseHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New(), NewBaseHandler(validator.New())
}

// decodeErrorDetails вытаскивает карту details из конверта {"error": {...}}.
func decodeErrorDetails(t *testing.T, body string) (code string, details map[string]interface{}) {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string                 `json:"code"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp.Error.Code, resp.Error.Details
}

func TestBindAndValidateQuery_InvalidGender(t *testing.T) {
	router, base := newTestRouter(t)
	router.GET("/users", func(c *gin.Context) {
		var q dto.UserFilterQuery
		if !base.BindAndValidate_Query(c, &q) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Невалидный фильтр должен давать 400 с конвертом валидации, а не 500
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users?page=1&gender=DRAGON", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	code, details := decodeErrorDetails(t, w.Body.String())
	assert.Equal(t, "VALIDATION_FAILED", code)
	assert.Equal(t, "Must be MALE or FEMALE", details["gender"])
}

func TestBindAndValidateQuery_ValidFilter(t *testing.T) {
	router, base := newTestRouter(t)
	var captured dto.UserFilterQuery
	router.GET("/users", func(c *gin.Context) {
		if !base.BindAndValidate_Query(c, &captured) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users?gender=FEMALE&status=ACTIVE&experience=HAS_EXP&page=2&limit=50", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FEMALE", captured.Gender)
	assert.Equal(t, "ACTIVE", captured.Status)
	assert.Equal(t, 2, captured.Page)
}

func TestBindAndValidateJSON_CustomRules(t *testing.T) {
	router, base := newTestRouter(t)
	router.POST("/admins", func(c *gin.Context) {
		var req dto.CreateAdminRequest
		if !base.BindAndValidate_JSON(c, &req) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	router.PATCH("/status", func(c *gin.Context) {
		var req dto.UpdateStatusRequest
		if !base.BindAndValidate_JSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("неизвестная роль", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"email":"a@b.com","password":"secret1","name":"Ali","role":"GODMODE"}`
		req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		code, details := decodeErrorDetails(t, w.Body.String())
		assert.Equal(t, "VALIDATION_FAILED", code)
		assert.Equal(t, "Must be ADMIN or SUPER_ADMIN", details["role"])
	})

	t.Run("пропущенный email", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"password":"secret1","name":"Ali"}`
		req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		// Имя поля берется из json-тега, а не из имени поля структуры
		_, details := decodeErrorDetails(t, w.Body.String())
		assert.Equal(t, "This field is required", details["email"])
	})

	t.Run("неизвестный статус анкеты", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/status", strings.NewReader(`{"status":"GONE"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		_, details := decodeErrorDetails(t, w.Body.String())
		assert.Equal(t, "Must be ACTIVE or HIDDEN", details["status"])
	})

	t.Run("валидное тело проходит", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"email":"a@b.com","password":"secret1","name":"Ali","role":"ADMIN"}`
		req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
