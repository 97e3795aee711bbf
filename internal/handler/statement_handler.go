package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"investco/internal/domain"
	"investco/internal/service"
)

// StatementHandler handles statement upload, review, and history endpoints.
type StatementHandler struct {
	statements *service.StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statements *service.StatementService) *StatementHandler {
	return &StatementHandler{statements: statements}
}

// Parse handles POST /api/v1/investments/:id/statements/parse
// The uploaded document runs through the extraction pipeline and the result
// is parked as a pending review; nothing is written to the statement history.
func (h *StatementHandler) Parse(c *gin.Context) {
	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	out, err := h.statements.Parse(c.Request.Context(), service.ParseInput{
		InvestmentID: investmentID,
		FileName:     header.Filename,
		ContentType:  contentType,
		Data:         data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, out)
}

type confirmRequest struct {
	Fields domain.FieldMap `json:"fields"`
}

// Confirm handles POST /api/v1/reviews/:id/confirm
// An optional fields body replaces the extracted values before persisting.
func (h *StatementHandler) Confirm(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review id")
		return
	}

	var req confirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	out, err := h.statements.Confirm(c.Request.Context(), reviewID, req.Fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, out)
}

// Discard handles DELETE /api/v1/reviews/:id
func (h *StatementHandler) Discard(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review id")
		return
	}
	if err := h.statements.Discard(c.Request.Context(), reviewID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"discarded": reviewID})
}

// History handles GET /api/v1/investments/:id/statements
func (h *StatementHandler) History(c *gin.Context) {
	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid investment id")
		return
	}
	statements, err := h.statements.History(c.Request.Context(), investmentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, statements)
}

// GetByID handles GET /api/v1/statements/:id
func (h *StatementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid statement id")
		return
	}
	stmt, err := h.statements.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stmt)
}

// Delete handles DELETE /api/v1/statements/:id
// Ledger entries derived from the statement are removed by the cascade.
func (h *StatementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid statement id")
		return
	}
	if err := h.statements.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
