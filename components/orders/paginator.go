package orders

// PageSizes are the page sizes offered by the pagination control.
var PageSizes = []int{5, 10, 25}

// DefaultPageSize is the initial rows-per-page value.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, allowed := range PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

// Page returns the slice [index*size, index*size+size) clipped to the bounds of seq.
// Out of range pages are empty, never an error.
func Page[T any](seq []T, index, size int) []T {
	if index < 0 || size <= 0 {
		return []T{}
	}
	start := index * size
	if start >= len(seq) {
		return []T{}
	}
	end := start + size
	if end > len(seq) {
		end = len(seq)
	}
	out := make([]T, end-start)
	copy(out, seq[start:end])
	return out
}

// PageCount returns how many pages of size cover total items.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
