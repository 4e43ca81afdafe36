package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"civiceye/internal/api"
	"civiceye/internal/domain"
)

func fixtureIssues() []domain.Issue {
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Issue{
		{ID: "1", Title: "Pothole", Description: "Deep pothole", Location: "MG Road", CreatedAt: base},
		{ID: "2", Title: "Streetlight", Description: "Flickering", Location: "Indiranagar", Resolved: true, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Garbage", Description: "Overflowing bin", Location: "Koramangala", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestListStateLifecycle(t *testing.T) {
	s := NewListState()
	if s.Phase != PhaseLoading {
		t.Fatalf("initial phase = %s", s.Phase)
	}

	ticket := s.BeginFetch()
	if !s.ApplyFetch(ticket, fixtureIssues(), nil) {
		t.Fatalf("current ticket rejected")
	}
	if s.Phase != PhaseReady || len(s.Issues()) != 3 {
		t.Fatalf("after load: phase=%s issues=%d", s.Phase, len(s.Issues()))
	}

	ticket = s.BeginFetch()
	if !s.Refreshing() || s.Phase != PhaseReady {
		t.Fatalf("refresh over loaded data should keep ready phase")
	}
	s.ApplyFetch(ticket, nil, errors.New("Failed to fetch issues"))
	if s.Phase != PhaseError || s.Err == nil {
		t.Fatalf("expected error phase, got %s", s.Phase)
	}
	if len(s.Issues()) != 3 {
		t.Fatalf("failed fetch must keep previous issues")
	}
}

func TestListStateDropsStaleResponses(t *testing.T) {
	s := NewListState()
	first := s.BeginFetch()
	second := s.BeginFetch()

	fresh := fixtureIssues()[:1]
	if !s.ApplyFetch(second, fresh, nil) {
		t.Fatalf("latest ticket rejected")
	}
	if s.ApplyFetch(first, fixtureIssues(), nil) {
		t.Fatalf("stale ticket applied")
	}
	if len(s.Issues()) != 1 {
		t.Fatalf("stale response overwrote state: %d issues", len(s.Issues()))
	}
}

func TestListStateVisibleAndEmptyMessage(t *testing.T) {
	s := NewListState()
	if s.EmptyMessage() != EmptyNoIssues {
		t.Fatalf("EmptyMessage = %q", s.EmptyMessage())
	}
	s.ApplyFetch(s.BeginFetch(), fixtureIssues(), nil)

	s.SetFilter(domain.FilterPending)
	s.SetQuery("ROAD")
	visible := s.Visible()
	if len(visible) != 1 || visible[0].ID != "1" {
		t.Fatalf("Visible = %+v", visible)
	}

	s.SetQuery("nowhere")
	if len(s.Visible()) != 0 || s.EmptyMessage() != EmptyNoMatches {
		t.Fatalf("expected no matches message, got %q", s.EmptyMessage())
	}

	stats := s.Stats()
	if stats.Count(domain.FilterAll) != 3 || stats.Count(domain.FilterResolved) != 1 || stats.Count(domain.FilterPending) != 2 {
		t.Fatalf("unexpected counts %+v", stats)
	}
}

func TestBrowserResolveCallsResolveThenOneRefetch(t *testing.T) {
	mock := api.NewMockClient()
	var order []string
	mock.ResolveIssueFn = func(_ context.Context, id string) (domain.Issue, error) {
		order = append(order, "resolve:"+id)
		return domain.Issue{ID: id, Resolved: true}, nil
	}
	mock.ListIssuesFn = func(context.Context) ([]domain.Issue, error) {
		order = append(order, "list")
		issues := fixtureIssues()
		issues[0].Resolved = true
		return issues, nil
	}

	s := NewListState()
	s.ApplyFetch(s.BeginFetch(), fixtureIssues(), nil)

	res, err := NewBrowser(mock).Resolve(context.Background(), "1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s.ApplyResolve(res)

	if mock.ResolveIssueCallCount != 1 || mock.ListIssuesCallCount != 1 {
		t.Fatalf("resolve=%d list=%d, want 1 and 1", mock.ResolveIssueCallCount, mock.ListIssuesCallCount)
	}
	if len(order) != 2 || order[0] != "resolve:1" || order[1] != "list" {
		t.Fatalf("call order = %v", order)
	}
	if issue, _ := domain.FindByID(s.Issues(), "1"); !issue.Resolved {
		t.Fatalf("issue not resolved after refresh")
	}
}

func TestBrowserResolveFailureLeavesStateUntouched(t *testing.T) {
	mock := api.NewMockClient()
	mock.ResolveIssueFn = func(context.Context, string) (domain.Issue, error) {
		return domain.Issue{}, &api.Error{Op: api.OpResolveIssue, Status: 500, Message: "Failed to resolve issue"}
	}

	s := NewListState()
	s.ApplyFetch(s.BeginFetch(), fixtureIssues(), nil)

	_, err := NewBrowser(mock).Resolve(context.Background(), "1")
	if err == nil || err.Error() != "Failed to resolve issue" {
		t.Fatalf("expected resolve error, got %v", err)
	}
	if mock.ListIssuesCallCount != 0 {
		t.Fatalf("no re-fetch expected after a failed resolve")
	}
	if issue, _ := domain.FindByID(s.Issues(), "1"); issue.Resolved {
		t.Fatalf("failed resolve changed local state")
	}
	if s.Phase != PhaseReady {
		t.Fatalf("phase changed to %s", s.Phase)
	}
}

func TestBrowserResolveRefreshFailurePatchesLocally(t *testing.T) {
	mock := api.NewMockClient()
	mock.ResolveIssueFn = func(_ context.Context, id string) (domain.Issue, error) {
		return domain.Issue{ID: id, Resolved: true}, nil
	}
	mock.ListIssuesFn = func(context.Context) ([]domain.Issue, error) {
		return nil, errors.New("Failed to fetch issues")
	}

	s := NewListState()
	s.ApplyFetch(s.BeginFetch(), fixtureIssues(), nil)
	res, err := NewBrowser(mock).Resolve(context.Background(), "3")
	if err != nil || res.RefreshErr == nil {
		t.Fatalf("expected refresh error in result, got %+v %v", res, err)
	}
	s.ApplyResolve(res)
	if issue, _ := domain.FindByID(s.Issues(), "3"); !issue.Resolved {
		t.Fatalf("expected local patch")
	}
}

func TestApplyResolveInvalidatesEarlierFetches(t *testing.T) {
	tests := []struct {
		name string
		res  ResolveResult
	}{
		{
			name: "refreshed list",
			res: ResolveResult{ID: "1", Issues: []domain.Issue{
				{ID: "1", Title: "Pothole", Resolved: true},
			}},
		},
		{
			name: "local patch",
			res:  ResolveResult{ID: "1", RefreshErr: errors.New("Failed to fetch issues")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewListState()
			s.ApplyFetch(s.BeginFetch(), fixtureIssues(), nil)

			inFlight := s.BeginFetch()
			s.ApplyResolve(tt.res)
			if s.Refreshing() {
				t.Fatalf("resolve should end the refresh it superseded")
			}

			before := fixtureIssues()
			if s.ApplyFetch(inFlight, before, nil) {
				t.Fatalf("fetch started before the resolve was applied")
			}
			if issue, _ := domain.FindByID(s.Issues(), "1"); !issue.Resolved {
				t.Fatalf("resolved issue reverted to pending")
			}

			next := s.BeginFetch()
			if !s.ApplyFetch(next, before, nil) {
				t.Fatalf("fetch started after the resolve was rejected")
			}
		})
	}
}

func TestBrowserLoadFilteredUsesServerListings(t *testing.T) {
	mock := api.NewMockClient()
	mock.ListResolvedFn = func(context.Context) ([]domain.Issue, error) { return fixtureIssues()[1:2], nil }
	mock.ListUnresolvedFn = func(context.Context) ([]domain.Issue, error) { return nil, nil }
	mock.ListIssuesFn = func(context.Context) ([]domain.Issue, error) { return fixtureIssues(), nil }
	b := NewBrowser(mock)

	for _, f := range domain.Filters {
		if _, err := b.LoadFiltered(context.Background(), f); err != nil {
			t.Fatalf("LoadFiltered(%s): %v", f, err)
		}
	}
	if mock.ListResolvedCallCount != 1 || mock.ListUnresolvedCallCount != 1 || mock.ListIssuesCallCount != 1 {
		t.Fatalf("unexpected call counts %+v", mock)
	}
}

func TestDashboard(t *testing.T) {
	mock := api.NewMockClient()
	issues := fixtureIssues()
	base := issues[2].CreatedAt
	for i := 0; i < 4; i++ {
		issues = append(issues, domain.Issue{ID: string(rune('a' + i)), CreatedAt: base.Add(time.Duration(i+1) * time.Minute)})
	}
	mock.ListIssuesFn = func(context.Context) ([]domain.Issue, error) { return issues, nil }

	d, err := LoadDashboard(context.Background(), mock)
	if err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	if d.Stats.Total != 7 || d.Stats.Resolved != 1 || d.Stats.Pending != 6 {
		t.Fatalf("unexpected stats %+v", d.Stats)
	}
	if len(d.Recent) != RecentLimit || d.Recent[0].ID != "1" || d.Recent[4].ID != "b" {
		t.Fatalf("unexpected recent list %+v", d.Recent)
	}
	if mock.ListIssuesCallCount != 1 {
		t.Fatalf("dashboard should fetch once")
	}
}
