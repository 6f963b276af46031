package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_StartsOnFirstPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())

	res := st.View()
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, []string{"1", "2"}, ids(res.Rows))
	assert.Equal(t, 2, res.TotalPages)
}

func TestState_SearchResetsPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetPage(2)

	st.SetSearch("e")
	assert.Equal(t, 1, st.Query().Page)
}

func TestState_SameSearchKeepsPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetSearch("example")
	st.SetPage(2)

	st.SetSearch("example")
	assert.Equal(t, 2, st.Query().Page)
}

func TestState_FilterResetsPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetPage(2)

	st.SetFilter("role", "CEO")
	assert.Equal(t, 1, st.Query().Page)
	assert.Equal(t, []string{"1"}, ids(st.View().Rows))

	st.SetPage(3)
	st.SetFilter("role", "")
	assert.Equal(t, 1, st.Query().Page)
	assert.NotContains(t, st.Query().Filters, "role")
}

func TestState_RecordsResetPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetPage(2)

	st.SetRecords(seededOwners()[:3])
	assert.Equal(t, 1, st.Query().Page)
	assert.Equal(t, 3, st.View().Total)
}

func TestState_SortKeepsPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetPage(2)

	st.SetSort("ownershipPercentage", SortAsc)
	res := st.View()
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []string{"2", "1"}, ids(res.Rows))
}

func TestState_PageSizeKeepsPage(t *testing.T) {
	st := NewState(OwnerSchema, 2)
	st.SetRecords(seededOwners())
	st.SetPage(2)
	require.Equal(t, []string{"3", "4"}, ids(st.View().Rows))

	st.SetPageSize(1)
	res := st.View()
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 1, res.PageSize)
	assert.Equal(t, []string{"2"}, ids(res.Rows))
	assert.Equal(t, 4, res.TotalPages)
}

func TestState_ClearFilters(t *testing.T) {
	st := NewState(OwnerSchema, 10)
	st.SetRecords(seededOwners())
	st.SetSearch("kim")
	st.SetFilter("role", "Shareholder")
	st.SetPage(4)

	st.ClearFilters()
	q := st.Query()
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Filters)
	assert.Equal(t, 1, q.Page)
	assert.Len(t, st.View().Rows, 4)
}

func TestState_QueryIsACopy(t *testing.T) {
	st := NewState(OwnerSchema, 10)
	st.SetFilter("role", "CEO")

	q := st.Query()
	q.Filters["role"] = "CFO"

	require.Equal(t, "CEO", st.Query().Filters["role"])
}

func TestState_RecordsAreCopied(t *testing.T) {
	owners := seededOwners()
	st := NewState(OwnerSchema, 10)
	st.SetRecords(owners)

	owners[0].Name = "Changed"
	assert.Equal(t, "Sarah Johnson", st.View().Rows[0].Name)
}
