package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backoffice-kit/backoffice/pkg/engine"
	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI() *cli {
	return &cli{backend: sdk.NewEmbedded(engine.NewSeededStore(engine.DefaultSeed()))}
}

// run executes one command line against c and returns its output.
func run(t *testing.T, c *cli, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmdWith(c)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestOwnersList(t *testing.T) {
	c := newTestCLI()

	out, err := run(t, c, "", "owners", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, "david.kim@example.com")
	assert.Contains(t, out, "Page 1 of 1 (4 owners)")
}

func TestOwnersList_FilterSortPage(t *testing.T) {
	c := newTestCLI()

	out, err := run(t, c, "", "owners", "list", "--role", "CTO", "--json")
	require.NoError(t, err)
	var page schema.PaginationResponse[schema.Owner]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Michael Chen", page.Data[0].Name)

	out, err = run(t, c, "", "owners", "list", "--sort", "ownershipPercentage", "--order", "asc", "--page-size", "2", "--page", "2", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "2", page.Data[0].ID)
	assert.Equal(t, "1", page.Data[1].ID)

	_, err = run(t, c, "", "owners", "list", "--role", "Janitor")
	assert.ErrorContains(t, err, "unknown role")

	_, err = run(t, c, "", "owners", "list", "--sort", "salary")
	assert.ErrorContains(t, err, "cannot sort")
}

func TestOwnersCreateUpdateGet(t *testing.T) {
	c := newTestCLI()

	out, err := run(t, c, "", "owners", "create", "--name", "Jane Roe", "--email", "jane@example.com", "--percentage", "5", "--role", "Advisor")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner created: 5 (Jane Roe)")

	_, err = run(t, c, "", "owners", "create", "--name", "Bad", "--email", "nope", "--role", "CEO")
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email must be a valid email address", verr.FieldErrors["email"])

	out, err = run(t, c, "", "owners", "update", "5", "--percentage", "7.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner updated: 5 (Jane Roe)")

	out, err = run(t, c, "", "owners", "get", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "7.5%")
	assert.Contains(t, out, "Advisor")

	_, err = run(t, c, "", "owners", "get", "99")
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestOwnersUpdate_RequiresAField(t *testing.T) {
	c := newTestCLI()

	_, err := run(t, c, "", "owners", "update", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	out, err := run(t, c, "", "owners", "get", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Michael Chen")
}

func TestOwnersDelete_Confirmation(t *testing.T) {
	c := newTestCLI()

	out, err := run(t, c, "n\n", "owners", "delete", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete owner 3 (Emily Rodriguez)?")
	assert.Contains(t, out, "Aborted.")
	_, err = run(t, c, "", "owners", "get", "3")
	require.NoError(t, err)

	out, err = run(t, c, "y\n", "owners", "delete", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner deleted: 3")

	out, err = run(t, c, "", "owners", "delete", "4", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "?")

	_, err = run(t, c, "", "owners", "delete", "4", "--yes")
	assert.True(t, sdk.IsNotFound(err))
}

func TestOwnership_Warning(t *testing.T) {
	c := newTestCLI()

	out, err := run(t, c, "", "ownership")
	require.NoError(t, err)
	assert.Contains(t, out, "Total ownership: 100%")
	assert.NotContains(t, out, "Warning")

	_, err = run(t, c, "", "owners", "update", "2", "--percentage", "99")
	require.NoError(t, err)

	out, err = run(t, c, "", "ownership")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: Total ownership exceeds 100% (169%)")
}

func TestAuditList(t *testing.T) {
	c := newTestCLI()

	_, err := run(t, c, "", "owners", "update", "1", "--role", "Advisor", "--actor", "u-1", "--actor-name", "Ada")
	require.NoError(t, err)

	out, err := run(t, c, "", "audit", "list", "--action", "update", "--json")
	require.NoError(t, err)
	var page schema.PaginationResponse[schema.AuditLogItem]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "u-1", page.Data[0].UserID)
	assert.Equal(t, "Ada", page.Data[0].UserName)

	out, err = run(t, c, "", "audit", "list", "--to", "2023-02-20")
	require.NoError(t, err)
	assert.Contains(t, out, "owner/1")
	assert.Contains(t, out, "owner/2")
	assert.NotContains(t, out, "owner/3")
	assert.Contains(t, out, "(2 entries)")

	_, err = run(t, c, "", "audit", "list", "--from", "last week")
	assert.ErrorContains(t, err, "invalid date")
}

func TestOwnersImportExport(t *testing.T) {
	c := newTestCLI()
	dir := t.TempDir()

	seed := `owners:
  - name: Grace Hopper
    email: grace@example.com
    ownershipPercentage: 3
    role: Advisor
  - name: Linus Torvalds
    email: linus@example.com
    ownershipPercentage: 2
    role: Shareholder
`
	in := filepath.Join(dir, "import.yml")
	require.NoError(t, os.WriteFile(in, []byte(seed), 0644))

	out, err := run(t, c, "", "owners", "import", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 owners")

	exported := filepath.Join(dir, "out", "owners.json")
	out, err = run(t, c, "", "owners", "export", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 owners")

	loaded, err := engine.LoadSeed(exported)
	require.NoError(t, err)
	require.Len(t, loaded.Owners, 6)
	assert.Equal(t, "6", loaded.Owners[5].ID)
	assert.Equal(t, "Linus Torvalds", loaded.Owners[5].Name)
}

func TestOwnersImport_StopsOnInvalidRow(t *testing.T) {
	c := newTestCLI()
	in := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"owners":[{"name":"Ok","email":"ok@example.com","ownershipPercentage":1,"role":"CEO"},{"name":"","email":"x","role":"CEO"}]}`), 0644))

	_, err := run(t, c, "", "owners", "import", in)
	require.Error(t, err)
	assert.ErrorContains(t, err, "imported 1 of 2 owners")
}
