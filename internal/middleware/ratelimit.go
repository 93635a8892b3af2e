package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-notes-api/internal/errors"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/ratelimit"
)

// RateLimitPerUser throttles authenticated callers by user id. Anonymous
// requests pass through so the handler can report UNAUTHORIZED. A nil
// limiter disables the check, and limiter errors fail open.
func RateLimitPerUser(limiter ratelimit.Limiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if limiter == nil || !ok {
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), userID.String())
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable", "user_id", userID, "error", err)
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			apierrors.TooManyRequests(c, decision.RetryAfter)
			return
		}
		c.Next()
	}
}
