package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// RateLimiter is a fixed-window counter kept in redis, shared by every
// instance. Identified actors get their own budget; anonymous callers are
// counted per client IP.
type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
	logger logger.Interface
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, scope string, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Minute
	}
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		seconds := int64(rl.window / time.Second)
		bucket := rl.now().Unix() / seconds
		key := rl.key(c, bucket)
		ctx := c.Request.Context()

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			// Redis down: let the upload through.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			retryAfter := (bucket+1)*seconds - rl.now().Unix()
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) key(c *gin.Context, bucket int64) string {
	if actor := GetActor(c); actor.ID != 0 {
		return fmt.Sprintf("estoque:ratelimit:%s:actor:%d:%d", rl.scope, actor.ID, bucket)
	}
	return fmt.Sprintf("estoque:ratelimit:%s:ip:%s:%d", rl.scope, c.ClientIP(), bucket)
}
