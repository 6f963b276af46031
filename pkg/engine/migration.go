package engine

import (
	"context"
	"fmt"

	"github.com/backoffice-kit/backoffice/pkg/schema"
)

// OwnerSource is anything that can hand over its full owner set.
type OwnerSource interface {
	All(ctx context.Context) ([]schema.Owner, error)
}

// OwnerSink is anything that can create owners.
type OwnerSink interface {
	Create(ctx context.Context, in schema.OwnerCreate) (schema.Owner, error)
}

// Migrate copies every owner from src into dst. The destination assigns new
// ids and timestamps. It works in both directions:
// - seed file or embedded store -> remote API (import)
// - remote API -> embedded store (backup)
//
// It stops at the first failure and reports how many owners were copied.
func Migrate(ctx context.Context, src OwnerSource, dst OwnerSink) (int, error) {
	owners, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list owners: %w", err)
	}

	for i, o := range owners {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		_, err := dst.Create(ctx, schema.OwnerCreate{
			Name:                o.Name,
			Email:               o.Email,
			OwnershipPercentage: o.OwnershipPercentage,
			Role:                o.Role,
		})
		if err != nil {
			return i, fmt.Errorf("failed to create owner %q in destination: %w", o.Name, err)
		}
	}
	return len(owners), nil
}
