package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one access log record per request
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []slog.Attr{
			slog.String("request_id", c.GetString(RequestIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.ClientIP()),
		}
		if c.Request.URL.RawQuery != "" {
			fields = append(fields, slog.String("query", c.Request.URL.RawQuery))
		}
		if email, ok := UserEmail(c); ok {
			fields = append(fields, slog.String("user", email))
		}

		level := slog.LevelInfo
		if status >= 400 {
			level = slog.LevelWarn
		}
		if status >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", fields...)
	}
}
