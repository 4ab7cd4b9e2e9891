// Package middleware provides the Gin middleware stack: request IDs, request
// logging, panic recovery, bearer authentication, and per-identity rate
// limiting.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the Gin context key holding the request ID.
const ContextRequestID = "request_id"

// RequestID injects a unique X-Request-Id header into every request/response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
