package port

import (
	"context"
	"io"
)

// ObjectStorage stores and retrieves statement documents.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// EmailSender delivers review notifications.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}
