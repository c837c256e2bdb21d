package web

import (
	"time"

	"github.com/dmitrijs2005/docforge/internal/common"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = common.RequestIDHeader

// requestLogger tags every request with an id, puts it on the request context
// so downstream logs and the backend call share it, and logs the outcome.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		switch {
		case status >= 500:
			l.Error(c.Request.Context(), "request failed", args...)
		case status >= 400:
			l.Warn(c.Request.Context(), "request rejected", args...)
		default:
			l.Debug(c.Request.Context(), "request served", args...)
		}
	}
}
