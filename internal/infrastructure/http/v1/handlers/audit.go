package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrostock/internal/core/apperror"
	"agrostock/internal/infrastructure/storage/postgres"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// AuditHistory reads back recorded entity changes. Satisfied by the
// postgres audit service.
type AuditHistory interface {
	GetEntityHistory(ctx context.Context, ownerID int64, entityType string, entityID int64, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler serves the change-history endpoint.
type AuditHandler struct {
	*BaseHandler
	history AuditHistory
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(base *BaseHandler, history AuditHistory) *AuditHandler {
	return &AuditHandler{BaseHandler: base, history: history}
}

// History handles GET /audit/:entity/:id - the recorded changes for
// one ledger record, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	entityType := c.Param("entity")
	if !isAuditedEntity(entityType) {
		h.Error(c, apperror.NewValidation("unknown entity type").
			WithDetail("entity", entityType))
		return
	}

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.Error(c, apperror.NewValidation("invalid limit").WithDetail("limit", raw))
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	entries, err := h.history.GetEntityHistory(ctx, h.OwnerID(c), entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entries)
}

// isAuditedEntity whitelists the entity names the ledger services
// audit under.
func isAuditedEntity(name string) bool {
	switch name {
	case "purchase", "sale", "return", "income", "remittance":
		return true
	}
	return false
}
