package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"investco/internal/domain"
	"investco/internal/service"
)

// InvestmentHandler handles investment registry endpoints.
type InvestmentHandler struct {
	investments *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investments *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investments: investments}
}

type investmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Kind          string `json:"kind" binding:"required"`
	Institution   string `json:"institution"`
	AccountNumber string `json:"account_number"`
}

// Create handles POST /api/v1/investments
func (h *InvestmentHandler) Create(c *gin.Context) {
	var req investmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	kind := domain.InvestmentKind(req.Kind)
	if !kind.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be annuity, retirement, or brokerage")
		return
	}

	inv := &domain.Investment{
		Name:          req.Name,
		Kind:          kind,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
	}
	if err := h.investments.Create(c.Request.Context(), inv); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// List handles GET /api/v1/investments
func (h *InvestmentHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	investments, total, err := h.investments.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, investments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/investments/:id
func (h *InvestmentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	inv, err := h.investments.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Update handles PUT /api/v1/investments/:id
func (h *InvestmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	var req investmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	kind := domain.InvestmentKind(req.Kind)
	if !kind.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be annuity, retirement, or brokerage")
		return
	}

	inv := &domain.Investment{
		ID:            id,
		Name:          req.Name,
		Kind:          kind,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
	}
	if err := h.investments.Update(c.Request.Context(), inv); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/investments/:id
func (h *InvestmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	if err := h.investments.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Ledger handles GET /api/v1/investments/:id/ledger
func (h *InvestmentHandler) Ledger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	entries, err := h.investments.Ledger(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
