package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "go-gin-bookmarks/internal/transport/http/response"
)

// Hitter 固定窗口计数器（见 cache.Cache.Hit）
type Hitter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitRedis 按 IP 的跨实例限速；Redis 不可用时放行并告警
func RateLimitRedis(h Hitter, prefix string, limit int, window time.Duration, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, ttl, err := h.Hit(c.Request.Context(), prefix+c.ClientIP(), window)
		if err != nil {
			l.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := int64(limit) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if n > int64(limit) {
			secs := int(ttl.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			resp.Abort(c, resp.CodeTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
