package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/catalogs/product"
	"agrostock/internal/domain/stock"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog plus the stock adjustment
// endpoint.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
	engine  *stock.Engine
}

// NewProductHandler creates a product handler.
func NewProductHandler(base *BaseHandler, service *product.Service, engine *stock.Engine) *ProductHandler {
	cfg := CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest, ownerID int64) *product.Product {
			return req.ToModel(ownerID)
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, ownerID, productID int64) *product.Product {
			return req.ToModel(ownerID, productID)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
		engine:         engine,
	}
}

// List handles GET /products. Supports the common list parameters
// plus a supplier filter; supplier_id=0 selects products with no
// supplier assigned.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	supplierID, ok := h.ParseOptionalInt64Query(c, "supplier_id")
	if !ok {
		return
	}

	result, err := h.service.ListBySupplier(ctx, h.OwnerID(c), supplierID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// SearchAll handles GET /products/search/all - a short capped list
// used by pickers.
func (h *ProductHandler) SearchAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context(), h.OwnerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, items)
}

// AdjustStock handles POST /products/:id/stock - applies a signed
// quantity delta under optimistic locking. The client sends the
// version it read; a stale version gets a conflict and must refetch.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.engine.ApplyDelta(ctx, h.OwnerID(c), productID, req.Quantity, req.Version)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}
