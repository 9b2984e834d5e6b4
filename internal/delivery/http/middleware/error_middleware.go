package middleware

import (
	"errors"
	"net/http"

	"easein-studio-backend/internal/delivery/http/response"
	"easein-studio-backend/pkg/apperror"
	"easein-studio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
// exposeDebug lets the debug string of mail failures reach the client.
func ErrorHandler(exposeDebug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// SECURITY: Never expose internal error details to clients.
			logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed",
				"path", c.FullPath(),
				"status", appErr.Code,
				"error", appErr.Err,
			)
		}

		debug := ""
		if exposeDebug {
			debug = appErr.Debug
		}
		response.ErrorWithDebug(c, appErr.Code, appErr.Message, appErr.Details, debug)
	}
}
