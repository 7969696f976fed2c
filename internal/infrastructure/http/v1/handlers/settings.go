package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/settings"
)

// SettingsHandler serves per-account settings.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// Get handles GET /settings. Accounts created before the settings
// table existed get a defaults row on first read.
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), h.OwnerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, s)
}

// Update handles PUT /settings - partial update, omitted fields keep
// their current value.
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var patch settings.Patch
	if !h.BindJSON(c, &patch) {
		return
	}

	updated, err := h.service.Update(ctx, h.OwnerID(c), patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}
