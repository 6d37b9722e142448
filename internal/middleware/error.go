package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler turns the last error attached with c.Error into a JSON response
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := classify(err)
		if status == http.StatusInternalServerError {
			logging.FromContext(c.Request.Context(), logger).Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}
		c.JSON(status, ErrorResponse{Error: message})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBadInput):
		return http.StatusBadRequest, service.ErrBadInput.Error()
	case errors.Is(err, service.ErrUserExists):
		return http.StatusBadRequest, service.ErrUserExists.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.ErrNotFound.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, service.ErrForbidden.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, service.ErrUnauthorized.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
