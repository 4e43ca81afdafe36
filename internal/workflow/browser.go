package workflow

import (
	"context"

	"civiceye/internal/api"
	"civiceye/internal/debug"
	"civiceye/internal/domain"
)

// Browser runs the list and resolve calls. It holds no state so it can be
// called from command goroutines; results are applied to a ListState by the caller.
type Browser struct {
	client api.Client
}

// NewBrowser returns a Browser backed by client.
func NewBrowser(client api.Client) *Browser {
	return &Browser{client: client}
}

// Load fetches the full issue list.
func (b *Browser) Load(ctx context.Context) ([]domain.Issue, error) {
	return b.client.ListIssues(ctx)
}

// LoadFiltered fetches the issues for one filter, using the server-side
// resolved and unresolved listings.
func (b *Browser) LoadFiltered(ctx context.Context, filter domain.StatusFilter) ([]domain.Issue, error) {
	switch filter {
	case domain.FilterResolved:
		return b.client.ListResolved(ctx)
	case domain.FilterPending:
		return b.client.ListUnresolved(ctx)
	default:
		return b.client.ListIssues(ctx)
	}
}

// ResolveResult is the outcome of a successful resolve call.
type ResolveResult struct {
	ID       string
	Resolved domain.Issue
	// Issues is the re-fetched list; nil when RefreshErr is set.
	Issues     []domain.Issue
	RefreshErr error
}

// Resolve marks the issue resolved and then re-fetches the list once. When the
// resolve call fails nothing is re-fetched and the error is returned.
func (b *Browser) Resolve(ctx context.Context, id string) (ResolveResult, error) {
	resolved, err := b.client.ResolveIssue(ctx, id)
	if err != nil {
		debug.Logf("workflow: resolve %s failed: %v", id, err)
		return ResolveResult{}, err
	}
	res := ResolveResult{ID: id, Resolved: resolved}
	issues, err := b.client.ListIssues(ctx)
	if err != nil {
		debug.Logf("workflow: refresh after resolving %s failed: %v", id, err)
		res.RefreshErr = err
		return res, nil
	}
	res.Issues = issues
	return res, nil
}

// ApplyResolve folds a resolve outcome into the list. Without a refreshed
// list the issue is patched in place. Either way fetches already in flight
// predate the resolve and are invalidated.
func (s *ListState) ApplyResolve(res ResolveResult) {
	s.ticket++
	s.refreshing = false
	if res.RefreshErr == nil && res.Issues != nil {
		s.issues = append([]domain.Issue(nil), res.Issues...)
		s.Phase = PhaseReady
		s.Err = nil
		return
	}
	s.MarkResolved(res.ID)
	if s.Phase == PhaseLoading {
		s.Phase = PhaseReady
	}
}
