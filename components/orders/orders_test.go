package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []Order) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestNewStoreRejectsDuplicateIDs(t *testing.T) {
	records := DefaultOrders()
	records[3].ID = records[0].ID

	_, err := NewStore(records)
	require.ErrorIs(t, err, ErrDuplicateOrderID)

	_, err = NewStore([]Order{{ID: ""}})
	require.ErrorIs(t, err, ErrEmptyOrderID)
}

func TestDefaultStoreFixture(t *testing.T) {
	store := DefaultStore()
	require.Equal(t, 10, store.Len())
	assert.Equal(t, "#CM9801", store.IDs()[0])
	assert.Equal(t, "#CM9810", store.IDs()[9])

	order, ok := store.Lookup("#CM9805")
	require.True(t, ok)
	assert.Equal(t, "Andi Lane", order.User.Name)
	assert.Equal(t, "Feb 2, 2023", order.Date)
	assert.Equal(t, StatusRejected, order.Status)
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store := DefaultStore()
	all := store.All()
	all[0].Project = "mutated"
	again, _ := store.Lookup("#CM9801")
	assert.Equal(t, "Landing Page", again.Project)
}

func TestStatusColors(t *testing.T) {
	assert.Equal(t, "#1976d2", StatusInProgress.Color())
	assert.Equal(t, "#4caf50", StatusComplete.Color())
	assert.Equal(t, "#2196f3", StatusPending.Color())
	assert.Equal(t, "#ff9800", StatusApproved.Color())
	assert.Equal(t, "#f44336", StatusRejected.Color())
	assert.Equal(t, "#666", Status("Archived").Color())
	assert.False(t, Status("Archived").Valid())
}

func TestUserInitials(t *testing.T) {
	assert.Equal(t, "NC", User{Name: "Natali Craig"}.Initials())
	assert.Equal(t, "KM", User{Name: "Kate Morrison", AvatarLabel: "/api/placeholder/40/40"}.Initials())
	assert.Equal(t, "OD", User{AvatarLabel: "od"}.Initials())
	assert.Equal(t, "ÉZ", User{Name: "Émile Zola"}.Initials())
	assert.Equal(t, "ÅS", User{Name: "åsa"}.Initials())
	assert.Empty(t, User{}.Initials())
}

func TestParseField(t *testing.T) {
	cases := map[string]Field{
		"":         FieldNone,
		"id":       FieldID,
		"ID":       FieldID,
		"user":     FieldUser,
		"userName": FieldUser,
		"Project":  FieldProject,
		"address":  FieldAddress,
		"date":     FieldDate,
		"status":   FieldStatus,
	}
	for input, want := range cases {
		got, err := ParseField(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseField("total")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseDateBucket(t *testing.T) {
	cases := map[string]DateBucket{
		"":          BucketAll,
		"All":       BucketAll,
		"today":     BucketToday,
		"Yesterday": BucketYesterday,
		"This Week": BucketThisWeek,
		"this_week": BucketThisWeek,
		"thisMonth": BucketThisMonth,
		"older":     BucketOlder,
	}
	for input, want := range cases {
		got, err := ParseDateBucket(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseDateBucket("Last Year")
	assert.ErrorIs(t, err, ErrUnknownDateBucket)
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, dir)
	dir, err = ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, dir)
	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}
