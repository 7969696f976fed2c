package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// CatalogHandler provides generic HTTP handlers for catalog entities.
// Account isolation comes from the owner ID carried by the token.
type CatalogHandler[T domain.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.CatalogService[T]
	entityName string

	mapCreateDTO func(req CreateDTO, ownerID int64) T
	mapUpdateDTO func(req UpdateDTO, ownerID, entityID int64) T
}

// CatalogHandlerConfig configures the catalog handler.
type CatalogHandlerConfig[T domain.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.CatalogService[T]
	EntityName   string
	MapCreateDTO func(req CreateDTO, ownerID int64) T
	MapUpdateDTO func(req UpdateDTO, ownerID, entityID int64) T
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T domain.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg CatalogHandlerConfig[T, CreateDTO, UpdateDTO],
) *CatalogHandler[T, CreateDTO, UpdateDTO] {
	return &CatalogHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
	}
}

// List handles GET /{entity} with filtering and pagination.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(ctx, h.OwnerID(c), query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Get handles GET /{entity}/:id.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(ctx, h.OwnerID(c), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Create handles POST /{entity}.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreateDTO(req, h.OwnerID(c))

	newID, err := h.service.Create(ctx, entity)
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.GetByID(ctx, h.OwnerID(c), newID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /{entity}/:id.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	updated := h.mapUpdateDTO(req, h.OwnerID(c), entityID)

	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	fresh, err := h.service.GetByID(ctx, h.OwnerID(c), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fresh)
}

// Delete handles DELETE /{entity}/:id.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, h.OwnerID(c), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, h.entityName+" deleted")
}
