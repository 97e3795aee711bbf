package noop

import (
	"context"
	"log"
	"strings"

	"investco/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, to []string, subject, _ string) error {
	log.Printf("[NOOP EMAIL] To %s: %s", strings.Join(to, ", "), subject)
	return nil
}
