package orders

import "slices"

// Selection is the set of checked order ids. It survives paging, sorting and filtering.
// IDs keep the order in which they were selected.
type Selection struct {
	ids []string
}

// NewSelection builds a selection holding ids, dropping duplicates.
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		if !s.IsSelected(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id string) Selection {
	idx := slices.Index(s.ids, id)
	if idx < 0 {
		return Selection{ids: append(slices.Clone(s.ids), id)}
	}
	return Selection{ids: slices.Delete(slices.Clone(s.ids), idx, idx+1)}
}

// ToggleAll selects exactly all when checked and clears the set otherwise.
func (s Selection) ToggleAll(all []string, checked bool) Selection {
	if !checked {
		return Selection{}
	}
	return NewSelection(all...)
}

// IsSelected reports membership of id.
func (s Selection) IsSelected(id string) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// Retain returns the selection holding only the ids keep accepts.
func (s Selection) Retain(keep func(id string) bool) Selection {
	out := Selection{}
	for _, id := range s.ids {
		if keep(id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

// IDs returns a copy of the selected ids.
func (s Selection) IDs() []string {
	return append([]string{}, s.ids...)
}

// Indeterminate is the aggregate checkbox state: some, but not all, of total are selected.
func (s Selection) Indeterminate(total int) bool {
	return len(s.ids) > 0 && len(s.ids) < total
}

// AllSelected reports whether every one of total ids is selected.
func (s Selection) AllSelected(total int) bool {
	return total > 0 && len(s.ids) == total
}
