package sdk

import (
	"context"

	"github.com/backoffice-kit/backoffice/internal/validation"
	"github.com/backoffice-kit/backoffice/pkg/engine"
	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// Embedded runs the store inside the calling process. Writes go through the
// same validation rules as the HTTP API before they reach the store.
type Embedded struct {
	*engine.AuditedStore
}

func NewEmbedded(store *engine.AuditedStore) *Embedded {
	return &Embedded{AuditedStore: store}
}

// List treats a zero page or page size as absent, the same way the HTTP
// client omits them from the query string.
func (e *Embedded) List(ctx context.Context, q schema.ListQuery) (schema.PaginationResponse[schema.Owner], error) {
	return e.AuditedStore.List(ctx, q.WithDefaults())
}

func (e *Embedded) ListAudit(ctx context.Context, q schema.AuditQuery) (schema.PaginationResponse[schema.AuditLogItem], error) {
	return e.AuditedStore.ListAudit(ctx, q.WithDefaults())
}

func (e *Embedded) Create(ctx context.Context, in schema.OwnerCreate) (schema.Owner, error) {
	if err := validation.Default().Check(schema.NewCreateOwnerRequest(in)); err != nil {
		return schema.Owner{}, err
	}
	return e.AuditedStore.Create(ctx, in)
}

func (e *Embedded) Update(ctx context.Context, id string, patch schema.OwnerPatch) (schema.Owner, error) {
	if err := validation.Default().Check(schema.NewUpdateOwnerRequest(patch)); err != nil {
		return schema.Owner{}, err
	}
	return e.AuditedStore.Update(ctx, id, patch)
}
