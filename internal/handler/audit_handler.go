package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"investco/internal/export"
	"investco/internal/service"
)

// AuditHandler handles continuity-audit and export endpoints.
type AuditHandler struct {
	investments *service.InvestmentService
	statements  *service.StatementService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(investments *service.InvestmentService, statements *service.StatementService) *AuditHandler {
	return &AuditHandler{investments: investments, statements: statements}
}

// Gaps handles GET /api/v1/investments/:id/gaps
func (h *AuditHandler) Gaps(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	gaps, err := h.statements.Gaps(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gaps)
}

// ExportCSV handles GET /api/v1/investments/:id/export/csv
// Streams the statement history as CSV with a BOM for Excel.
func (h *AuditHandler) ExportCSV(c *gin.Context) {
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
	statements, err := h.statements.History(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewWriter(&buf)
	if err := w.WriteStatementHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteStatements(statements); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(inv.Name, "csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/investments/:id/export/xlsx
// The workbook carries the statement history and the gap audit as separate
// sheets.
func (h *AuditHandler) ExportXLSX(c *gin.Context) {
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
	statements, err := h.statements.History(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	gaps, err := h.statements.Gaps(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, statements, gaps); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(inv.Name, "xlsx")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
