// Package middleware holds gin middleware shared by the HTTP server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxfilov/shazam/internal/logger"
)

// RequestID assigns (or propagates) an X-Request-ID header and logs entry
// and exit of every request at debug level.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		withRequestID := logger.WithRequestID(requestID)
		method := c.Request.Method
		path := c.Request.URL.Path

		logger.Log.Debug("request started",
			withRequestID, logger.WithIP(c.ClientIP()),
			zap.String("method", method), zap.String("path", path))

		c.Next()

		logger.Log.Debug("request completed",
			withRequestID, logger.WithStatus(c.Writer.Status()),
			zap.String("method", method), zap.String("path", path))
	}
}
