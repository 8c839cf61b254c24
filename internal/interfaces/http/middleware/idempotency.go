package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"team-management.backend/pkg/logger"
	"team-management.backend/pkg/redis"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker        = "processing"
	codeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// storedResponse is the replayable part of a completed request
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// IdempotencyMiddleware replays the first successful response for a repeated Idempotency-Key.
// Keys are scoped by client IP, method and route. Without Redis, or when Redis
// errors, the request passes through.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s:%s", c.ClientIP(), c.Request.Method, routeTemplate(c), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    codeIdempotencyConflict,
				"message": "request with this idempotency key is already in progress",
			})
			return
		case err == nil:
			replay(c, val)
			return
		case !redis.IsNil(err):
			logger.Warn(ctx, "idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    codeIdempotencyConflict,
				"message": "request with this idempotency key is already in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			record, _ := json.Marshal(storedResponse{
				Status:      status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.String(),
			})
			if err := redisSet(ctx, storageKey, string(record), RetentionDuration); err != nil {
				logger.Warn(ctx, "failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// failed requests may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}

func replay(c *gin.Context, raw string) {
	var stored storedResponse
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.Status == 0 {
		stored = storedResponse{Status: http.StatusOK, ContentType: "application/json", Body: raw}
	}
	if stored.ContentType == "" {
		stored.ContentType = "application/json"
	}
	c.Header(IdempotencyHitHeader, "true")
	c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
	c.Abort()
}
