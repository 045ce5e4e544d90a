package models

// MaxHistory is the number of searches kept in a SearchHistory.
const MaxHistory = 10

// SearchHistory lists profiles most recent first. Duplicates are allowed.
type SearchHistory []CountryProfile

// Push returns a new history with p at index 0, truncated to MaxHistory.
// The receiver is left untouched.
func (h SearchHistory) Push(p CountryProfile) SearchHistory {
	n := len(h) + 1
	if n > MaxHistory {
		n = MaxHistory
	}
	out := make(SearchHistory, 0, n)
	out = append(out, p)
	for _, prev := range h {
		if len(out) == n {
			break
		}
		out = append(out, prev)
	}
	return out
}

// Normalize enforces the length cap on a history read from storage.
func (h SearchHistory) Normalize() SearchHistory {
	if h == nil {
		return SearchHistory{}
	}
	if len(h) > MaxHistory {
		return append(SearchHistory{}, h[:MaxHistory]...)
	}
	return h
}
