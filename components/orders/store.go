package orders

import "fmt"

// Store is the immutable, ordered collection of orders for a session.
// Insertion order is the tie-breaker for every sort.
type Store struct {
	records []Order
	index   map[string]int
}

// NewStore copies records into a store, rejecting empty or duplicate ids.
func NewStore(records []Order) (*Store, error) {
	s := &Store{
		records: make([]Order, len(records)),
		index:   make(map[string]int, len(records)),
	}
	copy(s.records, records)
	for i, record := range s.records {
		if record.ID == "" {
			return nil, fmt.Errorf("%w: record %d", ErrEmptyOrderID, i)
		}
		if _, exists := s.index[record.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrderID, record.ID)
		}
		s.index[record.ID] = i
	}
	return s, nil
}

// MustStore is NewStore for fixtures known to be valid.
func MustStore(records []Order) *Store {
	s, err := NewStore(records)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultStore returns the demo order list.
func DefaultStore() *Store {
	return MustStore(DefaultOrders())
}

// All returns a copy of every record in store order.
func (s *Store) All() []Order {
	if s == nil {
		return nil
	}
	out := make([]Order, len(s.records))
	copy(out, s.records)
	return out
}

// IDs returns every order id in store order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.records))
	for i, record := range s.records {
		ids[i] = record.ID
	}
	return ids
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Lookup finds an order by id.
func (s *Store) Lookup(id string) (Order, bool) {
	if s == nil {
		return Order{}, false
	}
	idx, ok := s.index[id]
	if !ok {
		return Order{}, false
	}
	return s.records[idx], true
}

// Contains reports whether id belongs to the store.
func (s *Store) Contains(id string) bool {
	_, ok := s.Lookup(id)
	return ok
}

// DefaultOrders returns the ten demo orders. The second half repeats the first five
// with new ids so the list spans two pages at the default page size.
func DefaultOrders() []Order {
	base := []Order{
		{
			User:    User{Name: "Natali Craig", AvatarLabel: "NC"},
			Project: "Landing Page",
			Address: "Meadow Lane Oakland",
			Date:    "Just now",
			Status:  StatusInProgress,
		},
		{
			User:    User{Name: "Kate Morrison", AvatarLabel: "KM"},
			Project: "CRM Admin pages",
			Address: "Larry San Francisco",
			Date:    "A minute ago",
			Status:  StatusComplete,
		},
		{
			User:    User{Name: "Drew Cano", AvatarLabel: "DC"},
			Project: "Client Project",
			Address: "Bagwell Avenue Ocala",
			Date:    "1 hour ago",
			Status:  StatusPending,
		},
		{
			User:    User{Name: "Orlando Diggs", AvatarLabel: "OD"},
			Project: "Admin Dashboard",
			Address: "Washburn Baton Rouge",
			Date:    "Yesterday",
			Status:  StatusApproved,
		},
		{
			User:    User{Name: "Andi Lane", AvatarLabel: "AL"},
			Project: "App Landing Page",
			Address: "Nest Lane Olivette",
			Date:    "Feb 2, 2023",
			Status:  StatusRejected,
		},
	}
	out := make([]Order, 0, len(base)*2)
	for round := 0; round < 2; round++ {
		for i, order := range base {
			order.ID = fmt.Sprintf("#CM98%02d", round*len(base)+i+1)
			out = append(out, order)
		}
	}
	return out
}
