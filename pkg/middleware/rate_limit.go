package middleware

import (
	"fmt"
	"net/http"
	"time"

	"streamlane/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps requests per caller per route using fixed
// windows in Redis. Authenticated callers are keyed by user id, anonymous
// ones by client IP, so a busy NAT cannot exhaust a logged-in user's
// allowance.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := c.Get("user_id")
		if !ok {
			caller = c.ClientIP()
		}
		key := fmt.Sprintf("ratelimit:%s:%v", c.FullPath(), caller)

		ctx := c.Request.Context()
		pipe := redisClient.TxPipeline()
		count := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			internal := apperr.Internal(err)
			c.AbortWithStatusJSON(apperr.HTTPStatus(internal), gin.H{"error": apperr.Message(internal)})
			return
		}

		if count.Val() > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}
