package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipes/backend/internal/logging"
)

const (
	// HeaderXRequestID carries the request id in both directions
	HeaderXRequestID = "X-Request-ID"
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on
// the response and stores a logger carrying it on the request context
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(HeaderXRequestID, requestID)

		reqLogger := logger.With(slog.String("request_id", requestID))
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), reqLogger))

		c.Next()
	}
}
