package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/presence"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// PresenceHandler serves heartbeat and online-user endpoints.
type PresenceHandler struct {
	*BaseHandler
	service *presence.Service
}

// NewPresenceHandler creates a presence handler.
func NewPresenceHandler(base *BaseHandler, service *presence.Service) *PresenceHandler {
	return &PresenceHandler{BaseHandler: base, service: service}
}

// Heartbeat handles POST /presence/heartbeat - marks the caller
// online, optionally with an activity label.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.HeartbeatRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Heartbeat(ctx, h.OwnerID(c), h.Username(c), req.Action); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "ok")
}

// ListOnline handles GET /presence/online.
func (h *PresenceHandler) ListOnline(c *gin.Context) {
	users, err := h.service.ListOnline(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, users)
}

// CountOnline handles GET /presence/online/count.
func (h *PresenceHandler) CountOnline(c *gin.Context) {
	count, err := h.service.CountOnline(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"count": count})
}

// UpdateAction handles POST /presence/action - sets the caller's
// activity label, creating the presence row if needed.
func (h *PresenceHandler) UpdateAction(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ActionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateAction(ctx, h.OwnerID(c), h.Username(c), req.Action); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "action updated")
}

// ClearAction handles DELETE /presence/action.
func (h *PresenceHandler) ClearAction(c *gin.Context) {
	if err := h.service.ClearAction(c.Request.Context(), h.OwnerID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "action cleared")
}

// Cleanup handles POST /presence/cleanup - removes stale rows now
// instead of waiting for the sweeper.
func (h *PresenceHandler) Cleanup(c *gin.Context) {
	removed, err := h.service.Cleanup(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"removed": removed})
}
