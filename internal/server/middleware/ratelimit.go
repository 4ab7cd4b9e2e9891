package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/ratelimit"
	"github.com/skillsenselab/taskhive/internal/server"
)

// RateLimit returns a Gin middleware that applies the per-identity fixed
// window limiter. Must run after an Authenticate middleware; requests without
// an identity fall back to the client IP as the key.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := identityKey(c)
		if !limiter.Allow(key) {
			server.RespondWithError(c, apperrors.RateLimited())
			return
		}
		c.Next()
	}
}

// identityKey derives a stable rate-limit key from the authenticated user.
func identityKey(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return fmt.Sprintf("user:%d", user.ID)
	}
	return "ip:" + c.ClientIP()
}
