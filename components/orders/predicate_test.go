package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchIsCaseInsensitive(t *testing.T) {
	records := DefaultOrders()
	lower := Filter{Search: "natali", Bucket: BucketAll}.Apply(records)
	upper := Filter{Search: "NATALI", Bucket: BucketAll}.Apply(records)

	assert.Equal(t, []string{"#CM9801", "#CM9806"}, ids(lower))
	assert.Equal(t, ids(lower), ids(upper))
}

func TestSearchCoversIDUserProjectAddress(t *testing.T) {
	records := DefaultOrders()
	cases := map[string][]string{
		"cm9803":      {"#CM9803"},
		"morrison":    {"#CM9802", "#CM9807"},
		"landing":     {"#CM9801", "#CM9805", "#CM9806", "#CM9810"},
		"baton rouge": {"#CM9804", "#CM9809"},
		"Pending":     {},
		"":            ids(records),
	}
	for term, want := range cases {
		got := Filter{Search: term}.Apply(records)
		assert.Equal(t, want, ids(got), term)
	}
}

func TestDateBuckets(t *testing.T) {
	records := DefaultOrders()
	cases := map[DateBucket][]string{
		BucketAll:       ids(records),
		BucketToday:     {"#CM9801", "#CM9802", "#CM9803", "#CM9806", "#CM9807", "#CM9808"},
		BucketYesterday: {"#CM9804", "#CM9809"},
		BucketThisWeek:  {"#CM9801", "#CM9802", "#CM9803", "#CM9804", "#CM9806", "#CM9807", "#CM9808", "#CM9809"},
		BucketThisMonth: ids(records),
		BucketOlder:     {"#CM9805", "#CM9810"},
	}
	for bucket, want := range cases {
		got := Filter{Bucket: bucket}.Apply(records)
		assert.Equal(t, want, ids(got), bucket)
	}
}

func TestDateBucketLabelRules(t *testing.T) {
	assert.True(t, MatchesDateBucket("3 hour ago", BucketToday))
	assert.False(t, MatchesDateBucket("3 hours ago", BucketToday))
	assert.True(t, MatchesDateBucket("4 days ago", BucketThisWeek))
	assert.False(t, MatchesDateBucket("4 days ago", BucketToday))
	assert.True(t, MatchesDateBucket("Feb 14, 2021", BucketThisMonth))
	assert.False(t, MatchesDateBucket("Mar 1, 2024", BucketThisMonth))
	assert.True(t, MatchesDateBucket("Dec 31, 2020", BucketOlder))
	assert.False(t, MatchesDateBucket("Jan 1, 2019", BucketOlder))
}

func TestFilterCombinesSearchAndDate(t *testing.T) {
	got := Filter{Search: "lane", Bucket: BucketOlder}.Apply(DefaultOrders())
	assert.Equal(t, []string{"#CM9805", "#CM9810"}, ids(got))

	got = Filter{Search: "lane", Bucket: BucketToday}.Apply(DefaultOrders())
	assert.Equal(t, []string{"#CM9801", "#CM9806"}, ids(got))
}

func TestFilterResultIsSubsetOfStore(t *testing.T) {
	store := DefaultStore()
	for _, bucket := range DateBuckets() {
		for _, term := range []string{"", "a", "cm98", "zzz"} {
			for _, order := range (Filter{Search: term, Bucket: bucket}).Apply(store.All()) {
				assert.True(t, store.Contains(order.ID))
			}
		}
	}
}
