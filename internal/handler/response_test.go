package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"investco/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvestmentNotFound, http.StatusNotFound, "INVESTMENT_NOT_FOUND"},
		{domain.ErrStatementNotFound, http.StatusNotFound, "STATEMENT_NOT_FOUND"},
		{domain.ErrPendingReviewNotFound, http.StatusNotFound, "REVIEW_NOT_FOUND"},
		{domain.ErrPendingReviewExpired, http.StatusGone, "REVIEW_EXPIRED"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrStatementInvalid, http.StatusBadRequest, "STATEMENT_INVALID"},
		{domain.ErrExtractionFailed, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		status, code, _ := MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, code)
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrStatementInvalid)
	status, code, _ := MapDomainError(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "STATEMENT_INVALID", code)
}
