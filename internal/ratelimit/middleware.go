package ratelimit

import (
	"fmt"
	"strconv"

	"finecho-server/internal/apierrors"
	authHandler "finecho-server/internal/auth/handler"
	"finecho-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware limiting the authenticated user. It must run
// after the JWT middleware; requests without a user pass through.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, _, ok := authHandler.UserFromContext(c)
		if !ok || s.limit <= 0 {
			c.Next()
			return
		}

		// Check rate limit
		result, err := s.CheckRateLimit(ctx, userID)
		if err != nil {
			apierrors.AbortWithError(c, err)
			return
		}

		// Add rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		// Check if rate limit exceeded
		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			s.logger.Warn(observability.WithFields(ctx,
				observability.Field{Key: "limit", Value: result.Limit},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			), "rate limit exceeded")

			apierrors.AbortWithError(c, apierrors.TooManyRequests(
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter)))
			return
		}

		// Rate limit check passed, continue
		c.Next()
	}
}
