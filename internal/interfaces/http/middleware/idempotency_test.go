package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldsales/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	router.Use(Idempotency(DefaultIdempotencyConfig(store)))
	router.POST("/orders", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	router.GET("/orders", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestIdempotency(t *testing.T) {
	t.Run("first request with key is accepted", func(t *testing.T) {
		router := newIdempotencyRouter(t)
		req := httptest.NewRequest("POST", "/orders", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("replay with same key is rejected", func(t *testing.T) {
		router := newIdempotencyRouter(t)
		for i, want := range []int{http.StatusCreated, http.StatusConflict} {
			req := httptest.NewRequest("POST", "/orders", nil)
			req.Header.Set(IdempotencyKeyHeader, "key-2")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code, "request %d", i+1)
		}
	})

	t.Run("different keys do not collide", func(t *testing.T) {
		router := newIdempotencyRouter(t)
		for _, key := range []string{"key-a", "key-b"} {
			req := httptest.NewRequest("POST", "/orders", nil)
			req.Header.Set(IdempotencyKeyHeader, key)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("request without key passes through", func(t *testing.T) {
		router := newIdempotencyRouter(t)
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/orders", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("GET requests are never deduplicated", func(t *testing.T) {
		router := newIdempotencyRouter(t)
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("GET", "/orders", nil)
			req.Header.Set(IdempotencyKeyHeader, "key-get")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
