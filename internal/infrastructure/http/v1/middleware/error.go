package middleware

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/core/apperror"
	"agrostock/internal/infrastructure/http/v1/dto"
	"agrostock/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON
// envelopes. Hides internal errors from clients while logging full
// details. Handlers register errors via c.Error; this is the single
// place that writes error responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			c.JSON(appErr.HTTPStatus, dto.Envelope{
				IsSuccess: false,
				Message:   appErr.Message,
				ErrorCode: appErr.Code,
				Details:   appErr.Details,
			})
			return
		}

		// Unknown error: log and return a generic message
		logger.Error(c.Request.Context(), "unhandled error", "error", err)

		c.JSON(500, dto.Envelope{
			IsSuccess: false,
			Message:   "internal server error",
			ErrorCode: apperror.CodeInternal,
			Details: map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}
