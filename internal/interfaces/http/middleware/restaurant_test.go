package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/infrastructure/logger"
	"github.com/qrdine/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRestaurantScope(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var gotID uuid.UUID
	var ctxID string
	router := gin.New()
	router.Use(RequestID(), logger.GinMiddleware(zap.New(core)))
	router.GET("/scoped", RestaurantScope(), func(c *gin.Context) {
		gotID = GetRestaurantID(c)
		ctxID = logger.GetRestaurantID(c.Request.Context())
		logger.GetGinLogger(c).Info("inside handler")
		c.Status(http.StatusOK)
	})

	t.Run("reads the header", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest("GET", "/scoped", nil)
		req.Header.Set(RestaurantHeader, id.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, gotID)
		assert.Equal(t, id.String(), ctxID)

		entries := logs.FilterMessage("inside handler").All()
		require.NotEmpty(t, entries)
		assert.Equal(t, id.String(), entries[len(entries)-1].ContextMap()["restaurant_id"])
	})

	t.Run("falls back to the query parameter", func(t *testing.T) {
		id := uuid.New()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/scoped?restaurant_id="+id.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, gotID)
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/scoped", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeRestaurantRequired, resp.Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/scoped", nil)
		req.Header.Set(RestaurantHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid restaurant ID format")
	})
}

func TestOptionalRestaurantScope(t *testing.T) {
	var gotID uuid.UUID
	router := gin.New()
	router.POST("/orders", OptionalRestaurantScope(), func(c *gin.Context) {
		gotID = GetRestaurantID(c)
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/orders", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uuid.Nil, gotID)

	req := httptest.NewRequest("POST", "/orders", nil)
	req.Header.Set(RestaurantHeader, "bad")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
