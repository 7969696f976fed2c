package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/catalogs/party"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// PartyHandler serves one counterparty catalog (suppliers, customers
// or employees). One instance per kind.
type PartyHandler struct {
	*CatalogHandler[*party.Party, dto.CreatePartyRequest, dto.UpdatePartyRequest]
	service *party.Service
}

// NewPartyHandler creates a party handler for the service's kind.
func NewPartyHandler(base *BaseHandler, service *party.Service) *PartyHandler {
	kind := service.Kind()

	cfg := CatalogHandlerConfig[*party.Party, dto.CreatePartyRequest, dto.UpdatePartyRequest]{
		Service:    service.CatalogService,
		EntityName: string(kind),
		MapCreateDTO: func(req dto.CreatePartyRequest, ownerID int64) *party.Party {
			return req.ToModel(ownerID, kind)
		},
		MapUpdateDTO: func(req dto.UpdatePartyRequest, ownerID, partyID int64) *party.Party {
			return req.ToModel(ownerID, partyID, kind)
		},
	}

	return &PartyHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// SearchAll handles GET /{kind}s/search/all - short capped list
// for pickers.
func (h *PartyHandler) SearchAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context(), h.OwnerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, items)
}
