// Package api talks to the CivicEye issue service over REST.
package api

import (
	"context"

	"civiceye/internal/domain"
)

// Client defines the operations the app performs against the issue service.
type Client interface {
	CreateIssue(ctx context.Context, issue NewIssue) (domain.Issue, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	ListResolved(ctx context.Context) ([]domain.Issue, error)
	ListUnresolved(ctx context.Context) ([]domain.Issue, error)
	ResolveIssue(ctx context.Context, id string) (domain.Issue, error)
	TestStorage(ctx context.Context) (ProbeResult, error)
	Health(ctx context.Context) (ProbeResult, error)
}

// NewIssue is a submission payload. Fields are sent as-is; callers trim them.
type NewIssue struct {
	Title       string
	Description string
	Location    string
	Image       *domain.Image
}

// ProbeResult is the response of a connectivity probe.
type ProbeResult struct {
	Message string
	Raw     []byte
}
