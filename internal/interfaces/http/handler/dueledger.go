package handler

import (
	appledger "github.com/duebook/backend/internal/application/ledger"
	"github.com/duebook/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DueLedgerHandler handles due book HTTP requests
type DueLedgerHandler struct {
	BaseHandler
	service *appledger.TransactionService
}

// NewDueLedgerHandler creates a new DueLedgerHandler
func NewDueLedgerHandler(service *appledger.TransactionService) *DueLedgerHandler {
	return &DueLedgerHandler{service: service}
}

// RegisterRoutes registers due book routes
func (h *DueLedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	due := rg.Group("/due")
	{
		due.GET("/outstanding", h.OutstandingTotal)
		due.GET("/cash-entries", h.ListCashEntries)

		customers := due.Group("/customers")
		{
			customers.POST("", h.RegisterCustomer)
			customers.GET("", h.ListLedgers)
			customers.GET("/:id", h.GetLedger)
			customers.GET("/:id/statement", h.Statement)
			customers.POST("/:id/transactions", h.RecordTransaction)
			customers.DELETE("/:id/logs/:logId", h.DeleteLog)
			customers.DELETE("/:id", h.DeleteCustomer)
			customers.PUT("/:id/portrait", h.UpdatePortrait)
		}
	}
}

// RegisterCustomer opens a new customer ledger
// POST /api/v1/due/customers
func (h *DueLedgerHandler) RegisterCustomer(c *gin.Context) {
	var req appledger.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListLedgers lists customer ledgers
// GET /api/v1/due/customers
func (h *DueLedgerHandler) ListLedgers(c *gin.Context) {
	var filter appledger.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.service.ListLedgers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetLedger retrieves one customer ledger with full history
// GET /api/v1/due/customers/:id
func (h *DueLedgerHandler) GetLedger(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetLedger(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Statement returns the running-balance statement, newest first
// GET /api/v1/due/customers/:id/statement
func (h *DueLedgerHandler) Statement(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.Statement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// RecordTransaction appends a DUE or ADD entry
// POST /api/v1/due/customers/:id/transactions
func (h *DueLedgerHandler) RecordTransaction(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req appledger.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RecordTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// DeleteLog removes a transaction and its paired cash entry
// DELETE /api/v1/due/customers/:id/logs/:logId
func (h *DueLedgerHandler) DeleteLog(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	logID, ok := h.parseID(c, "logId")
	if !ok {
		return
	}

	resp, err := h.service.DeleteLog(c.Request.Context(), id, logID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteCustomer closes a ledger and removes its cash entries
// DELETE /api/v1/due/customers/:id
func (h *DueLedgerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdatePortrait replaces the customer's portrait
// PUT /api/v1/due/customers/:id/portrait
func (h *DueLedgerHandler) UpdatePortrait(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req appledger.UpdatePortraitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdatePortrait(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// OutstandingTotal sums the open balance across all customers
// GET /api/v1/due/outstanding
func (h *DueLedgerHandler) OutstandingTotal(c *gin.Context) {
	total, err := h.service.OutstandingTotal(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"outstanding": total})
}

// ListCashEntries lists cash book entries
// GET /api/v1/due/cash-entries
func (h *DueLedgerHandler) ListCashEntries(c *gin.Context) {
	var filter appledger.CashEntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.service.ListCashEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

func (h *DueLedgerHandler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.Error(c, 400, dto.ErrCodeBadRequest, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}
