package orders

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort is the active column and direction. A zero Field leaves the filtered order untouched.
type Sort struct {
	Field     Field     `json:"field,omitempty"`
	Direction Direction `json:"direction"`
}

// DefaultSort applies no ordering.
func DefaultSort() Sort {
	return Sort{Field: FieldNone, Direction: Ascending}
}

// Active reports whether a column is selected.
func (s Sort) Active() bool {
	return s.Field != FieldNone
}

// Toggle returns the state after a header click on field: the same column flips
// direction, a different column starts ascending.
func (s Sort) Toggle(field Field) Sort {
	if s.Field == field {
		return Sort{Field: field, Direction: s.Direction.Flip()}
	}
	return Sort{Field: field, Direction: Ascending}
}

// Indicator returns "asc", "desc" or "" for the column header of field.
func (s Sort) Indicator(field Field) string {
	if !s.Active() || s.Field != field {
		return ""
	}
	return string(s.Direction)
}

// fieldValue is the comparable projection of an order column. Numeric values compare by
// difference; every current order column is text.
type fieldValue struct {
	text    string
	number  float64
	numeric bool
}

type accessor func(Order) fieldValue

func textValue(s string) fieldValue { return fieldValue{text: s} }

var accessors = map[Field]accessor{
	FieldID:      func(o Order) fieldValue { return textValue(o.ID) },
	FieldUser:    func(o Order) fieldValue { return textValue(o.User.Name) },
	FieldProject: func(o Order) fieldValue { return textValue(o.Project) },
	FieldAddress: func(o Order) fieldValue { return textValue(o.Address) },
	FieldDate:    func(o Order) fieldValue { return textValue(o.Date) },
	FieldStatus:  func(o Order) fieldValue { return textValue(string(o.Status)) },
}

// Comparator orders two records under a Sort. It owns a collator and must not be
// shared between goroutines.
type Comparator struct {
	sort     Sort
	get      accessor
	collator *collate.Collator
}

// NewComparator builds the comparator for s. Unknown fields behave like no sort.
func NewComparator(s Sort) *Comparator {
	c := &Comparator{sort: s}
	if get, ok := accessors[s.Field]; ok {
		c.get = get
		c.collator = collate.New(language.English)
	}
	return c
}

// Compare returns -1, 0 or 1.
func (c *Comparator) Compare(a, b Order) int {
	if c.get == nil {
		return 0
	}
	result := c.compareValues(c.get(a), c.get(b))
	if c.sort.Direction == Descending {
		return -result
	}
	return result
}

func (c *Comparator) compareValues(a, b fieldValue) int {
	if a.numeric && b.numeric {
		switch {
		case a.number < b.number:
			return -1
		case a.number > b.number:
			return 1
		default:
			return 0
		}
	}
	return c.collator.CompareString(a.text, b.text)
}

// Apply returns a stably sorted copy of records. Ties keep their input order.
func (s Sort) Apply(records []Order) []Order {
	out := make([]Order, len(records))
	copy(out, records)
	if !s.Active() {
		return out
	}
	slices.SortStableFunc(out, NewComparator(s).Compare)
	return out
}
