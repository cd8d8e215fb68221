package domain

import "strings"

// Filter selects which subsequence of a collection is visible. It is
// process-local UI state and is never persisted or sent to a remote.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterCompleted   Filter = "completed"
	FilterUncompleted Filter = "uncompleted"
)

var validFilters = []Filter{FilterAll, FilterCompleted, FilterUncompleted}

// ParseFilter maps a config or CLI value onto a filter. Empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.TrimSpace(strings.ToLower(s)))
	if f == "" {
		return FilterAll, nil
	}
	for _, valid := range validFilters {
		if f == valid {
			return f, nil
		}
	}
	return FilterAll, ErrInvalidFilter
}

// Matches reports whether the item belongs to the filtered subsequence.
func (f Filter) Matches(item Item) bool {
	switch f {
	case FilterCompleted:
		return item.IsCompleted
	case FilterUncompleted:
		return !item.IsCompleted
	default:
		return true
	}
}

// Next cycles all → completed → uncompleted → all, for single-key UI cycling.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterCompleted
	case FilterCompleted:
		return FilterUncompleted
	default:
		return FilterAll
	}
}
