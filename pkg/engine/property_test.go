package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestStoreProperties drives the store with random create/delete sequences.
func TestStoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("created ids are unique among live and deleted ids", prop.ForAll(
		func(ops []bool) bool {
			ctx := context.Background()
			ms := NewMemStore(DefaultOwners())
			issued := map[string]bool{"1": true, "2": true, "3": true, "4": true}
			live := []string{"1", "2", "3", "4"}

			for _, create := range ops {
				if create || len(live) == 0 {
					o, err := ms.Create(ctx, schema.OwnerCreate{Name: "p"})
					if err != nil || issued[o.ID] {
						return false
					}
					issued[o.ID] = true
					live = append(live, o.ID)
					continue
				}
				id := live[0]
				live = live[1:]
				if err := ms.Delete(ctx, id); err != nil {
					return false
				}
				if _, err := ms.Get(ctx, id); !errors.Is(err, ErrNotFound) {
					return false
				}
			}

			all, _ := ms.All(ctx)
			return len(all) == len(live)
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("get after create returns the created record", prop.ForAll(
		func(name, email string, pct float64) bool {
			ctx := context.Background()
			ms := NewMemStore(nil)
			created, err := ms.Create(ctx, schema.OwnerCreate{Name: name, Email: email, OwnershipPercentage: pct, Role: schema.RoleCFO})
			if err != nil {
				return false
			}
			got, err := ms.Get(ctx, created.ID)
			return err == nil && got == created
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
