// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrostock/internal/core/apperror"
	appctx "agrostock/internal/core/context"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers the error on the Gin context and aborts. The JSON
// response is produced by middleware.ErrorHandler (single source of
// truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIDParam parses the :id path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("id", c.Param("id")))
		return 0, false
	}
	return id, true
}

// ParseOptionalInt64Query parses an optional integer query parameter.
// Returns nil when the parameter is absent; reports false on garbage.
func (h *BaseHandler) ParseOptionalInt64Query(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val < 0 {
		h.Error(c, apperror.NewValidation("invalid query parameter").WithDetail(key, raw))
		return nil, false
	}
	return &val, true
}

// OwnerID extracts the account ID from request context.
func (h *BaseHandler) OwnerID(c *gin.Context) int64 {
	return appctx.GetOwnerID(c.Request.Context())
}

// Username extracts the username from request context.
func (h *BaseHandler) Username(c *gin.Context) string {
	return appctx.GetUsername(c.Request.Context())
}

// OK sends 200 with data in the success envelope.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Created sends 201 with data in the success envelope.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// Success sends 200 with a confirmation message.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.OKMessage(message))
}
