package engine

import (
	"context"

	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// AuditedStore is a MemStore that records every owner mutation in an
// AuditLog. Reads are passed through unchanged.
type AuditedStore struct {
	*MemStore
	audit *AuditLog
}

func NewAuditedStore(store *MemStore, audit *AuditLog) *AuditedStore {
	return &AuditedStore{MemStore: store, audit: audit}
}

// Audit returns the underlying trail.
func (s *AuditedStore) Audit() *AuditLog {
	return s.audit
}

// ListAudit serves the audit trail listing.
func (s *AuditedStore) ListAudit(ctx context.Context, q schema.AuditQuery) (schema.PaginationResponse[schema.AuditLogItem], error) {
	return s.audit.List(ctx, q)
}

func (s *AuditedStore) Create(ctx context.Context, in schema.OwnerCreate) (schema.Owner, error) {
	owner, err := s.MemStore.Create(ctx, in)
	if err != nil {
		return schema.Owner{}, err
	}
	s.audit.Record(ctx, schema.AuditCreate, schema.EntityOwner, owner.ID, diffOwners(nil, &owner))
	return owner, nil
}

func (s *AuditedStore) Update(ctx context.Context, id string, patch schema.OwnerPatch) (schema.Owner, error) {
	before, after, err := s.MemStore.update(ctx, id, patch)
	if err != nil {
		return schema.Owner{}, err
	}
	s.audit.Record(ctx, schema.AuditUpdate, schema.EntityOwner, id, diffOwners(&before, &after))
	return after, nil
}

func (s *AuditedStore) Delete(ctx context.Context, id string) error {
	removed, err := s.MemStore.remove(ctx, id)
	if err != nil {
		return err
	}
	s.audit.Record(ctx, schema.AuditDelete, schema.EntityOwner, id, diffOwners(&removed, nil))
	return nil
}

// diffOwners lists the editable fields that differ between before and
// after. A nil side is treated as absent, so every field of the other side
// is reported.
func diffOwners(before, after *schema.Owner) map[string]schema.FieldChange {
	type field struct {
		key string
		get func(schema.Owner) any
	}
	fields := []field{
		{"name", func(o schema.Owner) any { return o.Name }},
		{"email", func(o schema.Owner) any { return o.Email }},
		{"ownershipPercentage", func(o schema.Owner) any { return o.OwnershipPercentage }},
		{"role", func(o schema.Owner) any { return string(o.Role) }},
	}

	changes := map[string]schema.FieldChange{}
	for _, f := range fields {
		var oldV, newV any
		if before != nil {
			oldV = f.get(*before)
		}
		if after != nil {
			newV = f.get(*after)
		}
		if before != nil && after != nil && oldV == newV {
			continue
		}
		changes[f.key] = schema.FieldChange{Old: oldV, New: newV}
	}
	return changes
}
