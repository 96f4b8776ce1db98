package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-hrcore/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
	idempotencyLock   = 30 * time.Second
)

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// encodeReplay stores the status code in front of the body, separated by one space.
func encodeReplay(status int, body []byte) string {
	return strconv.Itoa(status) + " " + string(body)
}

func decodeReplay(stored string) (int, []byte, bool) {
	code, body, ok := strings.Cut(stored, " ")
	if !ok {
		return 0, nil, false
	}
	status, err := strconv.Atoi(code)
	if err != nil || status < 200 || status >= 300 {
		return 0, nil, false
	}
	return status, []byte(body), true
}

// Idempotency replays the stored response for a repeated POST carrying the
// same Idempotency-Key with its original status. Only 2xx responses are cached.
func Idempotency(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s:%s", c.FullPath(), c.GetString("company_id"), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			if status, body, ok := decodeReplay(cached); ok {
				c.Header("Idempotent-Replay", "true")
				c.Data(status, "application/json; charset=utf-8", body)
				c.Abort()
				return
			}
			log.Warn("discarding unreadable idempotent response", zap.String("key", cacheKey))
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLock).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still in progress", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status < 200 || status >= 300 {
			return
		}
		if err := rdb.Set(ctx, cacheKey, encodeReplay(status, recorder.body.Bytes()), idempotencyTTL).Err(); err != nil {
			log.Warn("store idempotent response failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}
