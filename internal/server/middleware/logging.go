package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/taskhive/internal/logger"
)

// RequestLogger returns a Gin middleware that logs every request with method,
// path, status code, and latency. The health endpoint is silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": latency.String(),
			"client":  c.ClientIP(),
		}
		if id := c.GetString(ContextRequestID); id != "" {
			fields[logger.FieldRequestID] = id
		}

		switch {
		case status >= 500:
			log.Error("request", fields)
		case status >= 400:
			log.Warn("request", fields)
		default:
			log.Info("request", fields)
		}
	}
}
