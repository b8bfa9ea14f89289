package handler

import (
	appledger "github.com/duebook/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ReconciliationHandler handles reconciliation HTTP requests
type ReconciliationHandler struct {
	BaseHandler
	service *appledger.ReconciliationAppService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *appledger.ReconciliationAppService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recon := rg.Group("/due/reconciliation")
	{
		recon.GET("", h.Audit)
		recon.POST("/repair", h.Repair)
	}
}

// Audit compares the due book against the cash book
// GET /api/v1/due/reconciliation
func (h *ReconciliationHandler) Audit(c *gin.Context) {
	resp, err := h.service.Audit(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Repair fixes the drift found by an audit
// POST /api/v1/due/reconciliation/repair
func (h *ReconciliationHandler) Repair(c *gin.Context) {
	resp, err := h.service.Repair(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
