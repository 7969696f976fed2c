package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/auth"
	"agrostock/internal/domain/presence"
	"agrostock/internal/infrastructure/http/v1/dto"
	"agrostock/pkg/logger"
)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	*BaseHandler
	service  *auth.Service
	presence *presence.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, presence *presence.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
		presence:    presence,
	}
}

// Register handles POST /auth/register - creates the account together
// with its default settings and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, pair, err := h.service.Register(ctx, req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.NewAuthResponse(user, pair))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, pair, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewAuthResponse(user, pair))
}

// Logout handles POST /auth/logout. Tokens are stateless; logout only
// drops the caller's presence row.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.presence.Offline(ctx, h.OwnerID(c)); err != nil {
		logger.Warn(ctx, "failed to clear presence on logout", "error", err)
	}

	h.Success(c, "logged out")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), h.OwnerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, user)
}

// Refresh handles POST /auth/refresh - issues a fresh token for the
// authenticated caller.
func (h *AuthHandler) Refresh(c *gin.Context) {
	pair, err := h.service.Refresh(c.Request.Context(), h.OwnerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, pair)
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(ctx, h.OwnerID(c), req.OldPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}
