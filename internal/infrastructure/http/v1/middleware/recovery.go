// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"agrostock/internal/core/apperror"
	"agrostock/internal/infrastructure/http/v1/dto"
	"agrostock/pkg/logger"
)

// Recovery turns panics into a generic 500. The stack trace goes to
// the log only; clients see nothing beyond the request id. The
// response is written here because ErrorHandler has already unwound
// by the time the panic reaches this frame.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Error(c.Request.Context(), "panic recovered",
				"error", r,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Envelope{
				IsSuccess: false,
				Message:   "internal server error",
				ErrorCode: apperror.CodeInternal,
				Details: map[string]any{
					"request_id": c.GetString("request_id"),
				},
			})
		}()

		c.Next()
	}
}
