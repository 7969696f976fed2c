package handlers

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/ledger"
	"agrostock/internal/infrastructure/http/v1/dto"
)

// RecordHandler provides generic HTTP handlers for ledger records.
// Create, update and delete apply the paired stock effect inside the
// service transaction; the handler only maps DTOs.
type RecordHandler[T ledger.Record, ReqDTO any] struct {
	*BaseHandler
	service    *ledger.Service[T]
	entityName string

	// counterpartyParam names the counterparty query filter for this
	// record kind (supplier_id or customer_id). Value 0 selects
	// records with no counterparty assigned.
	counterpartyParam string

	mapDTO func(req ReqDTO, ownerID, recordID int64) T
}

// NewRecordHandler creates a record handler. The same request DTO is
// used for create (recordID 0) and update.
func NewRecordHandler[T ledger.Record, ReqDTO any](
	base *BaseHandler,
	service *ledger.Service[T],
	entityName string,
	counterpartyParam string,
	mapDTO func(req ReqDTO, ownerID, recordID int64) T,
) *RecordHandler[T, ReqDTO] {
	return &RecordHandler[T, ReqDTO]{
		BaseHandler:       base,
		service:           service,
		entityName:        entityName,
		counterpartyParam: counterpartyParam,
		mapDTO:            mapDTO,
	}
}

// List handles GET /{records} with search, date range, counterparty
// filter and pagination.
func (h *RecordHandler[T, ReqDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := query.ToFilter()
	if h.counterpartyParam != "" {
		counterpartyID, ok := h.ParseOptionalInt64Query(c, h.counterpartyParam)
		if !ok {
			return
		}
		filter.CounterpartyID = counterpartyID
	}

	// Only tables with an employee link act on this.
	employeeID, ok := h.ParseOptionalInt64Query(c, "employee_id")
	if !ok {
		return
	}
	filter.EmployeeID = employeeID

	result, err := h.service.List(ctx, h.OwnerID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Get handles GET /{records}/:id.
func (h *RecordHandler[T, ReqDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	record, err := h.service.GetByID(ctx, h.OwnerID(c), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, record)
}

// Create handles POST /{records}.
func (h *RecordHandler[T, ReqDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req ReqDTO
	if !h.BindJSON(c, &req) {
		return
	}

	record := h.mapDTO(req, h.OwnerID(c), 0)

	created, err := h.service.Create(ctx, record)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /{records}/:id.
func (h *RecordHandler[T, ReqDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req ReqDTO
	if !h.BindJSON(c, &req) {
		return
	}

	updated := h.mapDTO(req, h.OwnerID(c), recordID)

	fresh, err := h.service.Update(ctx, updated)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fresh)
}

// Delete handles DELETE /{records}/:id. The original stock effect is
// reversed in the same transaction.
func (h *RecordHandler[T, ReqDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, h.OwnerID(c), recordID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, h.entityName+" deleted")
}

// RegisterRoutes mounts the standard record routes on the group.
func (h *RecordHandler[T, ReqDTO]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
