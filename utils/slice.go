package utils

// UniqueUint deduplicates ids while keeping first-seen order. Always returns
// a non-nil slice so callers can hand the result straight to JSON.
func UniqueUint(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
