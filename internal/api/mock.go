package api

import (
	"context"
	"errors"
	"sync"

	"civiceye/internal/domain"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("api.MockClient: method not implemented")

// MockClient is a test double for Client.
type MockClient struct {
	CreateIssueFn    func(context.Context, NewIssue) (domain.Issue, error)
	ListIssuesFn     func(context.Context) ([]domain.Issue, error)
	ListResolvedFn   func(context.Context) ([]domain.Issue, error)
	ListUnresolvedFn func(context.Context) ([]domain.Issue, error)
	ResolveIssueFn   func(context.Context, string) (domain.Issue, error)
	TestStorageFn    func(context.Context) (ProbeResult, error)
	HealthFn         func(context.Context) (ProbeResult, error)

	mu                      sync.Mutex
	CreateIssueCallCount    int
	ListIssuesCallCount     int
	ListResolvedCallCount   int
	ListUnresolvedCallCount int
	ResolveIssueCallCount   int
	TestStorageCallCount    int
	HealthCallCount         int
	CreateIssueCallArgs     []NewIssue
	ResolveIssueCallArgs    []string
}

// NewMockClient returns a MockClient with no overrides.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreateIssue(ctx context.Context, issue NewIssue) (domain.Issue, error) {
	m.mu.Lock()
	m.CreateIssueCallCount++
	m.CreateIssueCallArgs = append(m.CreateIssueCallArgs, issue)
	fn := m.CreateIssueFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, issue)
	}
	return domain.Issue{}, ErrMockNotImplemented
}

func (m *MockClient) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	m.mu.Lock()
	m.ListIssuesCallCount++
	fn := m.ListIssuesFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockClient) ListResolved(ctx context.Context) ([]domain.Issue, error) {
	m.mu.Lock()
	m.ListResolvedCallCount++
	fn := m.ListResolvedFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockClient) ListUnresolved(ctx context.Context) ([]domain.Issue, error) {
	m.mu.Lock()
	m.ListUnresolvedCallCount++
	fn := m.ListUnresolvedFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockClient) ResolveIssue(ctx context.Context, id string) (domain.Issue, error) {
	m.mu.Lock()
	m.ResolveIssueCallCount++
	m.ResolveIssueCallArgs = append(m.ResolveIssueCallArgs, id)
	fn := m.ResolveIssueFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return domain.Issue{}, ErrMockNotImplemented
}

func (m *MockClient) TestStorage(ctx context.Context) (ProbeResult, error) {
	m.mu.Lock()
	m.TestStorageCallCount++
	fn := m.TestStorageFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return ProbeResult{}, ErrMockNotImplemented
}

func (m *MockClient) Health(ctx context.Context) (ProbeResult, error) {
	m.mu.Lock()
	m.HealthCallCount++
	fn := m.HealthFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return ProbeResult{}, ErrMockNotImplemented
}

// Calls returns the total number of calls across all methods.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateIssueCallCount + m.ListIssuesCallCount + m.ListResolvedCallCount +
		m.ListUnresolvedCallCount + m.ResolveIssueCallCount + m.TestStorageCallCount + m.HealthCallCount
}

var _ Client = (*MockClient)(nil)
var _ Client = (*HTTPClient)(nil)
