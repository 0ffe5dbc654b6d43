package middleware

import (
	"errors"
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
			response.Error(c, appErr.Code, appErr.Error())
			return
		}
		// Never expose internal error details to clients.
		logger.Log.Error("internal server error",
			"error", err,
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
