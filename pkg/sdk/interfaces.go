package sdk

import (
	"context"
	"errors"

	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// ErrNetwork is matched by every transport failure returned from the remote client.
var ErrNetwork = errors.New("network error")

// --- Functional Interfaces (Interface Segregation) ---

// OwnerReader defines the read operations on owners.
type OwnerReader interface {
	List(ctx context.Context, q schema.ListQuery) (schema.PaginationResponse[schema.Owner], error)
	Get(ctx context.Context, id string) (schema.Owner, error)
}

// OwnerWriter defines create, update and delete.
type OwnerWriter interface {
	Create(ctx context.Context, in schema.OwnerCreate) (schema.Owner, error)
	Update(ctx context.Context, id string, patch schema.OwnerPatch) (schema.Owner, error)
	Delete(ctx context.Context, id string) error
}

// AuditReader lists audit log entries.
type AuditReader interface {
	ListAudit(ctx context.Context, q schema.AuditQuery) (schema.PaginationResponse[schema.AuditLogItem], error)
}

type OwnershipReporter interface {
	OwnershipSummary(ctx context.Context) (schema.OwnershipSummary, error)
}

// --- Composite Interfaces ---

// OwnerStore is the full owner CRUD surface.
type OwnerStore interface {
	OwnerReader
	OwnerWriter
}

// Backend is what the HTTP handlers and the terminal client talk to. The
// in-process engine and the remote Client both implement it.
type Backend interface {
	OwnerStore
	AuditReader
	OwnershipReporter
}
