package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSeed = `owners:
  - id: "10"
    name: Ada Lovelace
    email: ada@example.com
    ownershipPercentage: 60
    role: CEO
    createdAt: 2023-05-01T00:00:00Z
    updatedAt: 2023-05-01T00:00:00Z
  - id: "11"
    name: Alan Turing
    email: alan@example.com
    ownershipPercentage: 40
    role: CTO
    createdAt: 2023-05-02T00:00:00Z
    updatedAt: 2023-05-02T00:00:00Z
audit:
  - id: x1
    timestamp: 2023-05-01T00:00:00Z
    userId: system
    userName: System
    action: CREATE
    entityType: owner
    entityId: "10"
`

func TestLoadSeed_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSeed), 0644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Owners, 2)
	assert.Equal(t, "Ada Lovelace", seed.Owners[0].Name)
	assert.Equal(t, schema.RoleCTO, seed.Owners[1].Role)
	assert.Equal(t, 2023, seed.Owners[0].CreatedAt.Year())
	require.Len(t, seed.Audit, 1)
	assert.Equal(t, schema.AuditCreate, seed.Audit[0].Action)

	store := NewMemStore(seed.Owners)
	created, err := store.Create(context.Background(), schema.OwnerCreate{Name: "Next"})
	require.NoError(t, err)
	assert.Equal(t, "12", created.ID)
}

func TestSaveSeed_RoundTripsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seed.json")

	require.NoError(t, SaveSeed(path, Seed{Owners: DefaultOwners()}))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Owners, 4)
	for i, o := range DefaultOwners() {
		assert.Equal(t, o.ID, seed.Owners[i].ID)
		assert.Equal(t, o.Email, seed.Owners[i].Email)
		assert.True(t, o.CreatedAt.Equal(seed.Owners[i].CreatedAt))
	}
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadSeed(bad)
	assert.ErrorContains(t, err, "decode seed")
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed.Owners, 4)
	require.Len(t, seed.Audit, 4)

	store := NewSeededStore(seed)
	page, err := store.ListAudit(context.Background(), schema.AuditQuery{}.WithDefaults())
	require.NoError(t, err)
	assert.Equal(t, "seed-4", page.Data[0].ID)

	sum, err := store.OwnershipSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum.TotalOwnership)
}

type failingSink struct{ after int }

func (f *failingSink) Create(_ context.Context, in schema.OwnerCreate) (schema.Owner, error) {
	if f.after == 0 {
		return schema.Owner{}, assert.AnError
	}
	f.after--
	return schema.Owner{Name: in.Name}, nil
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	src := NewMemStore(DefaultOwners())
	dst := NewMemStore([]schema.Owner{{ID: "1", Name: "Existing"}})

	n, err := Migrate(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, _ := dst.All(ctx)
	require.Len(t, all, 5)
	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, "Sarah Johnson", all[1].Name)
}

func TestMigrate_StopsAtFirstFailure(t *testing.T) {
	n, err := Migrate(context.Background(), NewMemStore(DefaultOwners()), &failingSink{after: 2})
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "Emily Rodriguez")
	assert.Equal(t, 2, n)
}
