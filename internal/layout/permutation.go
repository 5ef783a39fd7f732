package layout

// StableDedup returns the items accepted by keep, in input order, with later duplicates dropped.
// A nil keep accepts everything.
func StableDedup[T comparable](items []T, keep func(T) bool) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// CompletePermutation appends every element of universe missing from prefix, in universe order.
// prefix is expected to be deduplicated and drawn from universe.
func CompletePermutation[T comparable](prefix, universe []T) []T {
	present := make(map[T]struct{}, len(prefix))
	out := make([]T, 0, len(universe))
	for _, it := range prefix {
		present[it] = struct{}{}
		out = append(out, it)
	}
	for _, it := range universe {
		if _, ok := present[it]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}
