package domain

import (
	"strings"
	"time"
)

// Issue is a civic issue as reported by the remote service.
//
// Business rules enforced:
//   - The server id is immutable and never generated client side.
//   - Resolution is one-way; this client never un-resolves, edits or deletes.
type Issue struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Image       string    `json:"image,omitempty"`
	Resolved    bool      `json:"issue_resolved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasImage reports whether a photo URL is attached.
func (i Issue) HasImage() bool {
	return strings.TrimSpace(i.Image) != ""
}

// MatchesQuery reports whether the query is a case-insensitive substring of the
// title, description or location. A blank query matches everything; any other
// query is matched as typed, surrounding spaces included.
func (i Issue) MatchesQuery(query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(i.Title), q) ||
		strings.Contains(strings.ToLower(i.Description), q) ||
		strings.Contains(strings.ToLower(i.Location), q)
}

// ApplyFilter returns the issues passing the filter, preserving order.
func ApplyFilter(issues []Issue, filter StatusFilter) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if filter.Matches(issue) {
			out = append(out, issue)
		}
	}
	return out
}

// Search returns the issues matching query, preserving order.
func Search(issues []Issue, query string) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.MatchesQuery(query) {
			out = append(out, issue)
		}
	}
	return out
}

// Visible applies the filter and then the search query.
func Visible(issues []Issue, filter StatusFilter, query string) []Issue {
	return Search(ApplyFilter(issues, filter), query)
}

// Stats summarises a list of issues.
type Stats struct {
	Total    int
	Resolved int
	Pending  int
}

// ResolutionRate returns the resolved fraction in [0, 1]; zero for an empty list.
func (s Stats) ResolutionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Resolved) / float64(s.Total)
}

// Count returns the number of issues matched by filter.
func (s Stats) Count(filter StatusFilter) int {
	switch filter {
	case FilterResolved:
		return s.Resolved
	case FilterPending:
		return s.Pending
	default:
		return s.Total
	}
}

// ComputeStats counts resolved and pending issues.
func ComputeStats(issues []Issue) Stats {
	stats := Stats{Total: len(issues)}
	for _, issue := range issues {
		if issue.Resolved {
			stats.Resolved++
		}
	}
	stats.Pending = stats.Total - stats.Resolved
	return stats
}

// Recent returns the first n issues in server order. The backend lists newest
// first, so this is the most recent n.
func Recent(issues []Issue, n int) []Issue {
	if n <= 0 {
		return nil
	}
	if len(issues) < n {
		n = len(issues)
	}
	return append([]Issue(nil), issues[:n]...)
}

// FindByID returns the issue with the given id.
func FindByID(issues []Issue, id string) (Issue, bool) {
	for _, issue := range issues {
		if issue.ID == id {
			return issue, true
		}
	}
	return Issue{}, false
}
