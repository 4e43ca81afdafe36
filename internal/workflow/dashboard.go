package workflow

import (
	"context"

	"civiceye/internal/api"
	"civiceye/internal/domain"
)

// RecentLimit is how many recent issues the dashboard lists.
const RecentLimit = 5

// Dashboard is the aggregate view shown on the home tab.
type Dashboard struct {
	Stats  domain.Stats
	Recent []domain.Issue
}

// BuildDashboard computes the dashboard from a full list.
func BuildDashboard(issues []domain.Issue) Dashboard {
	return Dashboard{
		Stats:  domain.ComputeStats(issues),
		Recent: domain.Recent(issues, RecentLimit),
	}
}

// LoadDashboard fetches the list once and builds the dashboard.
func LoadDashboard(ctx context.Context, client api.Client) (Dashboard, error) {
	issues, err := client.ListIssues(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(issues), nil
}
