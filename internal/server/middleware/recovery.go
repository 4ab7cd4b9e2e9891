package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/logger"
)

// Recovery returns a Gin middleware that recovers from panics and logs the stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("recovery")
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apperrors.Internal(fmt.Errorf("%v", err)).ToResponse())
			}
		}()
		c.Next()
	}
}
