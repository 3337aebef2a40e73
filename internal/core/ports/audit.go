package ports

import (
	"context"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// AuditSink persists authentication activity records.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditTrail accepts events for asynchronous recording. Publish never
// blocks the auth flow on storage.
type AuditTrail interface {
	Publish(event domain.AuditEvent)
}
