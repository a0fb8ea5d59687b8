package orders

import (
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// User is the customer an order belongs to.
type User struct {
	Name        string `json:"name" yaml:"name"`
	AvatarLabel string `json:"avatar_label" yaml:"avatar_label"`
}

// Initials returns the avatar glyph derived from AvatarLabel, falling back to the name.
func (u User) Initials() string {
	source := strings.TrimSpace(u.AvatarLabel)
	if source == "" || strings.Contains(source, "/") {
		source = u.Name
	}
	words := strings.Fields(source)
	if len(words) == 1 {
		runes := []rune(words[0])
		return strings.ToUpper(string(runes[:min(2, len(runes))]))
	}
	initials := make([]rune, 0, 2)
	for _, word := range words {
		initials = append(initials, []rune(word)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

// Order is an immutable row of the order list.
type Order struct {
	ID      string `json:"id" yaml:"id"`
	User    User   `json:"user" yaml:"user"`
	Project string `json:"project" yaml:"project"`
	Address string `json:"address" yaml:"address"`
	// Date is a pre-formatted label ("Just now", "Yesterday", "Feb 2, 2023"), not a timestamp.
	Date   string `json:"date" yaml:"date"`
	Status Status `json:"status" yaml:"status"`
}

// Status enumerates the order lifecycle values shown in the list.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
	StatusPending    Status = "Pending"
	StatusApproved   Status = "Approved"
	StatusRejected   Status = "Rejected"
)

const unknownStatusColor = "#666"

var statusColors = map[Status]string{
	StatusInProgress: "#1976d2",
	StatusComplete:   "#4caf50",
	StatusPending:    "#2196f3",
	StatusApproved:   "#ff9800",
	StatusRejected:   "#f44336",
}

// Statuses lists every known status in display order.
func Statuses() []Status {
	return []Status{StatusInProgress, StatusComplete, StatusPending, StatusApproved, StatusRejected}
}

// Color returns the display color bound to the status.
func (s Status) Color() string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return unknownStatusColor
}

// Label returns the human readable status.
func (s Status) Label() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Field is a sortable column of the order list.
type Field string

const (
	FieldNone    Field = ""
	FieldID      Field = "id"
	FieldUser    Field = "user"
	FieldProject Field = "project"
	FieldAddress Field = "address"
	FieldDate    Field = "date"
	FieldStatus  Field = "status"
)

// Fields lists the sortable columns in table order.
func Fields() []Field {
	return []Field{FieldID, FieldUser, FieldProject, FieldAddress, FieldDate, FieldStatus}
}

// ParseField resolves a column name. "userName", "user_name" and "User" all map to FieldUser;
// an empty name clears the sort.
func ParseField(name string) (Field, error) {
	key := strcase.ToSnake(strings.TrimSpace(name))
	switch key {
	case "":
		return FieldNone, nil
	case "user", "user_name", "name", "customer":
		return FieldUser, nil
	}
	for _, field := range Fields() {
		if string(field) == key {
			return field, nil
		}
	}
	return FieldNone, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// DateBucket is a coarse date category matched against the order Date label.
type DateBucket string

const (
	BucketAll       DateBucket = "All"
	BucketToday     DateBucket = "Today"
	BucketYesterday DateBucket = "Yesterday"
	BucketThisWeek  DateBucket = "This Week"
	BucketThisMonth DateBucket = "This Month"
	BucketOlder     DateBucket = "Older"
)

// DateBuckets lists the buckets offered by the date filter dropdown.
func DateBuckets() []DateBucket {
	return []DateBucket{BucketAll, BucketToday, BucketYesterday, BucketThisWeek, BucketThisMonth, BucketOlder}
}

// ParseDateBucket accepts display names ("This Week") and identifiers ("this_week", "thisWeek").
// An empty name is BucketAll.
func ParseDateBucket(name string) (DateBucket, error) {
	key := strcase.ToSnake(strings.TrimSpace(name))
	if key == "" {
		return BucketAll, nil
	}
	for _, bucket := range DateBuckets() {
		if strcase.ToSnake(string(bucket)) == key {
			return bucket, nil
		}
	}
	return BucketAll, fmt.Errorf("%w: %q", ErrUnknownDateBucket, name)
}

// Direction is the sort order of the active column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps "asc"/"ascending" and "desc"/"descending"; empty means Ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: %q", ErrUnknownDirection, value)
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}
