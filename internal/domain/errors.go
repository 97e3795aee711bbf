package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvestmentNotFound    = errors.New("investment not found")
	ErrStatementNotFound     = errors.New("statement not found")
	ErrPendingReviewNotFound = errors.New("pending review not found")
	ErrPendingReviewExpired  = errors.New("pending review has expired")
	ErrFileNotFound          = errors.New("file not found")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrFamilyMismatch        = errors.New("statement family does not match investment kind")
	ErrStatementInvalid      = errors.New("statement has validation errors and cannot be saved")

	// ErrExtractionFailed is the terminal text-recovery failure: every stage
	// produced less than the usable-length threshold. Distinct from a
	// ValidationResult with errors, which means text was recovered but
	// required fields were not found.
	ErrExtractionFailed = errors.New("unable to extract text from document using any method")
)
