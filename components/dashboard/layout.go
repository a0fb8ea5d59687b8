package dashboard

// applyOrderOverride puts the ids listed in order first, then every remaining id in its
// original position order. Ids in order that are not in ids are dropped.
func applyOrderOverride(ids []string, order []string) []string {
	if len(order) == 0 {
		return append([]string{}, ids...)
	}
	present := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		present[id] = struct{}{}
	}
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, ok := present[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		result = append(result, id)
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			result = append(result, id)
		}
	}
	return result
}
