package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"collabhub_backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration - время удержания блокировки на время обработки
	LockDuration = 30 * time.Second
	// RetentionDuration - срок хранения закэшированного ответа
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

// cachedResponse - сохраненный ответ первого запроса. Статус хранится
// рядом с телом, чтобы повтор после 201 тоже получил 201.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware защищает мутирующие операции от повторной обработки.
// Клиент присылает Idempotency-Key; повторный запрос с тем же ключом получает
// закэшированный ответ первого. Без Redis и без заголовка пропускает запрос как есть.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redis.Available() {
			c.Next()
			return
		}

		userID := c.GetString("userID")
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)

		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
					"code":  "ERR_IDEMPOTENCY_CONFLICT",
				})
				return
			}

			// Повтор: отдаем сохраненный ответ с исходным статусом
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) != nil {
				cached = cachedResponse{Status: http.StatusOK, Body: val}
			}
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(cached.Status, cached.Body)
			c.Abort()
			return
		} else if !errors.Is(err, goredis.Nil) {
			c.Next()
			return
		}

		success, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !success {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			raw, merr := json.Marshal(cachedResponse{Status: c.Writer.Status(), Body: w.body.String()})
			if merr != nil {
				_ = redisDel(ctx, storageKey)
				return
			}
			_ = redisSet(ctx, storageKey, string(raw), RetentionDuration)
		} else {
			// Неуспех не кэшируем, повтор разрешен
			_ = redisDel(ctx, storageKey)
		}
	}
}
