package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOwnerRequest_NullMeansAbsent(t *testing.T) {
	var req UpdateOwnerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"role":null,"ownershipPercentage":12.5}`), &req))

	patch := req.Patch()
	assert.False(t, patch.Name.IsSet())
	assert.False(t, patch.Email.IsSet())
	assert.False(t, patch.Role.IsSet())
	pct, ok := patch.OwnershipPercentage.Get()
	require.True(t, ok)
	assert.Equal(t, 12.5, pct)

	var empty UpdateOwnerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"email":null}`), &empty))
	assert.True(t, empty.Patch().IsEmpty())
}

func TestUpdateOwnerRequest_RoundTripsPatch(t *testing.T) {
	patch := OwnerPatch{Email: Some("new@example.com"), OwnershipPercentage: Some(0.0)}

	back := NewUpdateOwnerRequest(patch).Patch()
	assert.Equal(t, patch, back)

	data, err := json.Marshal(NewUpdateOwnerRequest(patch))
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"new@example.com","ownershipPercentage":0}`, string(data))
}

func TestOwnerPatch_Apply(t *testing.T) {
	created := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	o := Owner{ID: "2", Name: "Michael Chen", Email: "michael.chen@example.com", OwnershipPercentage: 30, Role: RoleCTO, CreatedAt: created, UpdatedAt: created}

	assert.Equal(t, o, OwnerPatch{}.Apply(o))
	assert.True(t, OwnerPatch{}.IsEmpty())

	p := OwnerPatch{OwnershipPercentage: Some(99.0)}
	assert.False(t, p.IsEmpty())
	got := p.Apply(o)
	assert.Equal(t, 99.0, got.OwnershipPercentage)
	got.OwnershipPercentage = 30
	assert.Equal(t, o, got)
}

func TestOptional_FromPtr(t *testing.T) {
	assert.False(t, FromPtr[string](nil).IsSet())

	s := ""
	v, ok := FromPtr(&s).Get()
	assert.True(t, ok, "a pointer to the zero value is still set")
	assert.Equal(t, "", v)
}

func TestQueryDefaults(t *testing.T) {
	assert.Equal(t, ListQuery{Page: 1, PageSize: 10, Search: "kim"}, ListQuery{Search: "kim"}.WithDefaults())
	assert.Equal(t, ListQuery{Page: -1, PageSize: 3}, ListQuery{Page: -1, PageSize: 3}.WithDefaults())

	q := AuditQuery{}.WithDefaults()
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultAuditPageSize, q.PageSize)
	assert.Equal(t, 7, AuditQuery{Page: 7, PageSize: 5}.WithDefaults().Page)
}

func TestSummarizeOwnership(t *testing.T) {
	sum := SummarizeOwnership([]Owner{{OwnershipPercentage: 45}, {OwnershipPercentage: 30}, {OwnershipPercentage: 15}, {OwnershipPercentage: 10}})
	assert.Equal(t, OwnershipSummary{TotalOwnership: 100, OwnerCount: 4}, sum)

	sum = SummarizeOwnership([]Owner{{OwnershipPercentage: 99}, {OwnershipPercentage: 70}})
	assert.True(t, sum.OverAllocated)
	assert.Zero(t, SummarizeOwnership(nil).OwnerCount)
}

func TestValidationError_KeepsFirstMessage(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.AddField("email", "Email is required")
	verr.AddField("email", "Email must be a valid email address")
	verr.AddGlobal("Request body is not valid JSON")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "Email is required", verr.FieldErrors["email"])
	assert.Equal(t, "validation failed: email: Email is required; Request body is not valid JSON", verr.Error())
}
