package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/taskhive/internal/auth"
	"github.com/skillsenselab/taskhive/internal/auth/token"
	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/users"
)

// ContextUser is the Gin context key holding the authenticated identity.
const ContextUser = "current_user"

// Authenticate returns a Gin middleware that validates the bearer token with
// the expected type and stores the resolved identity in the context. Any
// validation failure short-circuits the request.
func Authenticate(v *auth.Validator, expectedType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := v.Validate(c.Request.Context(), c.Request, expectedType)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireAccess authenticates with an access token.
func RequireAccess(v *auth.Validator) gin.HandlerFunc {
	return Authenticate(v, token.TypeAccess)
}

// RequireRefresh authenticates with a refresh token.
func RequireRefresh(v *auth.Validator) gin.HandlerFunc {
	return Authenticate(v, token.TypeRefresh)
}

// RequireAdmin rejects requests whose identity lacks the admin flag. Must run
// after an Authenticate middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			server.RespondWithError(c, apperrors.Forbidden("Admin access required."))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated identity from the context, or nil.
func CurrentUser(c *gin.Context) *users.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*users.User); ok {
			return u
		}
	}
	return nil
}
