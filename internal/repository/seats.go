package repository

import "strings"

// NormalizeSeats uppercases, trims and deduplicates seat labels while
// preserving request order.  Empty entries are dropped.
func NormalizeSeats(seats []string) []string {
	out := make([]string, 0, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ConflictingSeats returns the requested seats that already appear in the
// taken set, in request order.  An empty result means the whole request
// can be granted.
func ConflictingSeats(requested, taken []string) []string {
	if len(requested) == 0 || len(taken) == 0 {
		return nil
	}
	held := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		held[s] = struct{}{}
	}
	var conflicts []string
	for _, s := range requested {
		if _, ok := held[s]; ok {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
