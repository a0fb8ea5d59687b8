package orders

import "strings"

// Filter is the search + date bucket state of the list.
type Filter struct {
	Search string     `json:"search"`
	Bucket DateBucket `json:"date_bucket"`
}

// DefaultFilter matches every order.
func DefaultFilter() Filter {
	return Filter{Bucket: BucketAll}
}

// Matches reports whether the order passes both the search and the date bucket tests.
func (f Filter) Matches(order Order) bool {
	return MatchesSearch(order, f.Search) && MatchesDateBucket(order.Date, f.Bucket)
}

// Apply returns the orders matching f, preserving input order.
func (f Filter) Apply(records []Order) []Order {
	out := make([]Order, 0, len(records))
	for _, record := range records {
		if f.Matches(record) {
			out = append(out, record)
		}
	}
	return out
}

// MatchesSearch is a case-insensitive substring test over id, user name, project and address.
func MatchesSearch(order Order, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, haystack := range []string{order.ID, order.User.Name, order.Project, order.Address} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// MatchesDateBucket tests a pre-formatted date label against a bucket.
//
// The rules match labels, not timestamps. "This Month" accepts any label containing "Feb",
// which only holds for the demo data; see DESIGN.md.
func MatchesDateBucket(label string, bucket DateBucket) bool {
	switch bucket {
	case BucketAll, "":
		return true
	case BucketToday:
		return isToday(label)
	case BucketYesterday:
		return label == "Yesterday"
	case BucketThisWeek:
		return isThisWeek(label)
	case BucketThisMonth:
		return isThisWeek(label) || strings.Contains(label, "Feb")
	case BucketOlder:
		for _, year := range []string{"2023", "2022", "2021", "2020"} {
			if strings.Contains(label, year) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func isToday(label string) bool {
	return label == "Just now" || label == "A minute ago" || strings.Contains(label, "hour ago")
}

func isThisWeek(label string) bool {
	return isToday(label) || label == "Yesterday" || strings.Contains(label, "days ago")
}
