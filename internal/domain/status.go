package domain

import "strings"

// Status colours used for resolved and pending badges.
const (
	ColorResolved = "#10b981"
	ColorPending  = "#f59e0b"
)

// StatusText returns the label shown for an issue's resolution state.
func StatusText(resolved bool) string {
	if resolved {
		return "Resolved"
	}
	return "Pending"
}

// StatusColor returns the hex colour for an issue's resolution state.
func StatusColor(resolved bool) string {
	if resolved {
		return ColorResolved
	}
	return ColorPending
}

// StatusFilter narrows the issue list by resolution state.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterResolved StatusFilter = "resolved"
	FilterPending  StatusFilter = "pending"
)

// Filters lists the filters in display order.
var Filters = []StatusFilter{FilterAll, FilterResolved, FilterPending}

// ParseStatusFilter normalises a filter name. Blank selects FilterAll.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterResolved, FilterPending:
		return f, nil
	case "unresolved", "open":
		return FilterPending, nil
	default:
		return FilterAll, invalidFilterError(raw)
	}
}

// Label returns the capitalised name shown on filter chips.
func (f StatusFilter) Label() string {
	switch f {
	case FilterResolved:
		return "Resolved"
	case FilterPending:
		return "Pending"
	default:
		return "All"
	}
}

// Next cycles to the following filter in display order.
func (f StatusFilter) Next() StatusFilter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Matches reports whether an issue passes the filter.
func (f StatusFilter) Matches(issue Issue) bool {
	switch f {
	case FilterResolved:
		return issue.Resolved
	case FilterPending:
		return !issue.Resolved
	default:
		return true
	}
}
