// Package workflow holds the screen-independent state machines of the app:
// the issue list, the resolve transition and the report form.
package workflow

import (
	"civiceye/internal/domain"
)

// Phase is the lifecycle of a list fetch.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Empty-state messages for the issue list.
const (
	EmptyNoMatches = "No matching issues found"
	EmptyNoIssues  = "No issues reported yet"
)

// ListState is the issue list as seen by one screen. It is not safe for
// concurrent use; the UI loop owns it.
type ListState struct {
	Phase  Phase
	Filter domain.StatusFilter
	Query  string
	Err    error

	issues     []domain.Issue
	ticket     uint64
	refreshing bool
}

// NewListState returns a list waiting for its first fetch.
func NewListState() *ListState {
	return &ListState{Phase: PhaseLoading, Filter: domain.FilterAll}
}

// BeginFetch issues a ticket for a new fetch. Only the response carrying the
// latest ticket is applied.
func (s *ListState) BeginFetch() uint64 {
	s.ticket++
	if s.Phase == PhaseReady {
		s.refreshing = true
	} else {
		s.Phase = PhaseLoading
	}
	return s.ticket
}

// ApplyFetch applies a fetch result and reports whether it was current. A
// failed fetch keeps the previously loaded issues.
func (s *ListState) ApplyFetch(ticket uint64, issues []domain.Issue, err error) bool {
	if ticket != s.ticket {
		return false
	}
	s.refreshing = false
	if err != nil {
		s.Phase = PhaseError
		s.Err = err
		return true
	}
	s.issues = append([]domain.Issue(nil), issues...)
	s.Phase = PhaseReady
	s.Err = nil
	return true
}

// Refreshing reports whether a fetch is in flight over already loaded data.
func (s *ListState) Refreshing() bool {
	return s.refreshing
}

// Issues returns the full, unfiltered list.
func (s *ListState) Issues() []domain.Issue {
	return s.issues
}

// Visible returns the filtered then searched issues, recomputed from the full list.
func (s *ListState) Visible() []domain.Issue {
	return domain.Visible(s.issues, s.Filter, s.Query)
}

// Stats returns the counts shown on the filter chips.
func (s *ListState) Stats() domain.Stats {
	return domain.ComputeStats(s.issues)
}

// SetFilter changes the status filter.
func (s *ListState) SetFilter(f domain.StatusFilter) {
	s.Filter = f
}

// SetQuery changes the search text.
func (s *ListState) SetQuery(q string) {
	s.Query = q
}

// MarkResolved flips one issue to resolved locally.
func (s *ListState) MarkResolved(id string) bool {
	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues[i].Resolved = true
			return true
		}
	}
	return false
}

// EmptyMessage explains an empty visible list.
func (s *ListState) EmptyMessage() string {
	if s.Query != "" || s.Filter != domain.FilterAll {
		return EmptyNoMatches
	}
	return EmptyNoIssues
}
