package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("success first request passes through and keeps the lock keys", func(t *testing.T) {
		db, mock := redismock.NewClientMock()

		router := gin.New()
		router.POST("/leave-requests", func(c *gin.Context) {
			c.Set("employee_id_validated", employeeID)
			c.Next()
		}, middleware.Idempotency(db), func(c *gin.Context) {
			assert.NotEmpty(t, c.GetString("idempotency_cache_key"))
			assert.NotEmpty(t, c.GetString("idempotency_lock_key"))
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		cacheKey := "idemp:/leave-requests:" + employeeID + ":key-1"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success cached response is replayed without hitting the handler", func(t *testing.T) {
		db, mock := redismock.NewClientMock()

		handlerCalled := false
		router := gin.New()
		router.POST("/leave-requests", func(c *gin.Context) {
			c.Set("employee_id_validated", employeeID)
			c.Next()
		}, middleware.Idempotency(db), func(c *gin.Context) {
			handlerCalled = true
		})

		cacheKey := "idemp:/leave-requests:" + employeeID + ":key-2"
		mock.ExpectGet(cacheKey).SetVal(`{"id":"cached"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-2")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, handlerCalled)
		assert.Contains(t, w.Body.String(), "cached")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent retry while first attempt in flight", func(t *testing.T) {
		db, mock := redismock.NewClientMock()

		router := gin.New()
		router.POST("/leave-requests", func(c *gin.Context) {
			c.Set("employee_id_validated", employeeID)
			c.Next()
		}, middleware.Idempotency(db), func(c *gin.Context) {
			t.Fatal("handler must not run while the key is locked")
		})

		cacheKey := "idemp:/leave-requests:" + employeeID + ":key-3"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-3")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success request without key bypasses the middleware", func(t *testing.T) {
		db, mock := redismock.NewClientMock()

		router := gin.New()
		router.POST("/leave-requests", middleware.Idempotency(db), func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
