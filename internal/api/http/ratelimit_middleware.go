package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/stories-service/internal/ratelimit"
	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

// rateLimitMiddleware throttles by client IP and path. The limiter fails
// open when Redis is unreachable.
func rateLimitMiddleware(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "rl:" + c.Path() + ":" + c.IP()
		if err := limiter.Allow(c.UserContext(), key); err != nil {
			if errors.Is(err, ratelimit.ErrLimited) {
				return apperrors.NewRateLimited("too many attempts, retry later")
			}
			return apperrors.NewInternalError(err)
		}
		return c.Next()
	}
}
