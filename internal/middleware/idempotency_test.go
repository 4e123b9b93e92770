package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkgredis "collabhub_backend/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdempotencyRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	pkgredis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { pkgredis.SetClient(nil) })

	r := gin.New()
	r.POST("/pay", func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	}, IdempotencyMiddleware(), handler)
	return r, mr
}

func doPay(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplayReturnsCachedResponse(t *testing.T) {
	calls := 0
	r, _ := setupIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	first := doPay(r, "key-1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Hit"))

	second := doPay(r, "key-1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// Другой ключ обрабатывается заново
	third := doPay(r, "key-2")
	require.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ReplayKeepsOriginalStatus(t *testing.T) {
	calls := 0
	r, _ := setupIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "order-1"})
	})

	first := doPay(r, "key-created")
	require.Equal(t, http.StatusCreated, first.Code)

	second := doPay(r, "key-created")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	calls := 0
	r, _ := setupIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	doPay(r, "")
	doPay(r, "")
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ProcessingConflict(t *testing.T) {
	r, mr := setupIdempotencyRouter(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	require.NoError(t, mr.Set("idempotency:user-1:key-busy", "processing"))

	w := doPay(r, "key-busy")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	fail := true
	calls := 0
	r, _ := setupIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		if fail {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := doPay(r, "key-retry")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Повтор после ошибки разрешен и проходит до обработчика
	fail = false
	w = doPay(r, "key-retry")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, calls)

	// Теперь успешный ответ закэширован
	w = doPay(r, "key-retry")
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, 2, calls)
}

func TestIdempotency_WithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pkgredis.SetClient(nil)

	calls := 0
	r := gin.New()
	r.POST("/pay", IdempotencyMiddleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	doPay(r, "key-1")
	doPay(r, "key-1")
	assert.Equal(t, 2, calls)
}
