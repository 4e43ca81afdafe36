package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"civiceye/internal/api"
	"civiceye/internal/diagnostics"
	"civiceye/internal/domain"
	"civiceye/internal/workflow"

	json "github.com/goccy/go-json"
)

// errChecksFailed is returned after the results have been printed, so callers
// only need to set the exit status.
var errChecksFailed = errors.New("one or more checks failed")

func parseChecks(raw string) ([]diagnostics.Probe, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return []diagnostics.Probe{diagnostics.ProbeBackend, diagnostics.ProbeStorage}, nil
	case "backend", "health":
		return []diagnostics.Probe{diagnostics.ProbeBackend}, nil
	case "storage", "cloudinary":
		return []diagnostics.Probe{diagnostics.ProbeStorage}, nil
	default:
		return nil, fmt.Errorf("unknown check %q (want backend, storage or all)", raw)
	}
}

type checkOutput struct {
	Probe  string `json:"probe"`
	OK     bool   `json:"ok"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func runChecks(ctx context.Context, out io.Writer, client api.Client, journal *diagnostics.Journal, probes []diagnostics.Probe, asJSON bool) error {
	results := make([]checkOutput, 0, len(probes))
	failed := false
	for _, probe := range probes {
		res := diagnostics.Run(ctx, client, journal, probe)
		failed = failed || !res.OK
		results = append(results, checkOutput{
			Probe:  string(res.Probe),
			OK:     res.OK,
			Title:  res.Title,
			Detail: res.Detail,
		})
	}

	if asJSON {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			mark := "✔"
			if !r.OK {
				mark = "✘"
			}
			line := fmt.Sprintf("%s %s", mark, r.Title)
			if r.Detail != "" && r.Detail != r.Title {
				line += ": " + r.Detail
			}
			fmt.Fprintln(out, line)
		}
	}
	if failed {
		return errChecksFailed
	}
	return nil
}

type issueOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image,omitempty"`
	Resolved    bool   `json:"resolved"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func toIssueOutput(issue domain.Issue) issueOutput {
	out := issueOutput{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Location:    issue.Location,
		Image:       issue.Image,
		Resolved:    issue.Resolved,
	}
	if !issue.CreatedAt.IsZero() {
		out.CreatedAt = issue.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toIssueOutputs(issues []domain.Issue) []issueOutput {
	out := make([]issueOutput, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toIssueOutput(issue))
	}
	return out
}

func printIssues(ctx context.Context, out io.Writer, client api.Client, filter domain.StatusFilter, asJSON bool) error {
	issues, err := workflow.NewBrowser(client).LoadFiltered(ctx, filter)
	if err != nil {
		return fmt.Errorf("load issues: %w", err)
	}
	if asJSON {
		return writeJSON(out, toIssueOutputs(issues))
	}
	if len(issues) == 0 {
		fmt.Fprintln(out, workflow.EmptyNoIssues)
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintln(out, issueLine(issue))
	}
	return nil
}

func issueLine(issue domain.Issue) string {
	line := fmt.Sprintf("[%s] %s  %s", domain.StatusText(issue.Resolved), issue.ID, issue.Title)
	if issue.Location != "" {
		line += " · " + issue.Location
	}
	if !issue.CreatedAt.IsZero() {
		line += " · " + issue.CreatedAt.Local().Format("Jan 2, 2006")
	}
	return line
}

type summaryOutput struct {
	Total          int           `json:"total"`
	Resolved       int           `json:"resolved"`
	Pending        int           `json:"pending"`
	ResolutionRate float64       `json:"resolutionRate"`
	Recent         []issueOutput `json:"recent"`
}

func printSummary(ctx context.Context, out io.Writer, client api.Client, asJSON bool) error {
	dash, err := workflow.LoadDashboard(ctx, client)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}
	if asJSON {
		return writeJSON(out, summaryOutput{
			Total:          dash.Stats.Total,
			Resolved:       dash.Stats.Resolved,
			Pending:        dash.Stats.Pending,
			ResolutionRate: dash.Stats.ResolutionRate(),
			Recent:         toIssueOutputs(dash.Recent),
		})
	}
	fmt.Fprintf(out, "Total Issues: %d\nResolved: %d\nPending: %d\nResolution rate: %.0f%%\n",
		dash.Stats.Total, dash.Stats.Resolved, dash.Stats.Pending, dash.Stats.ResolutionRate()*100)
	if len(dash.Recent) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nRecent Issues:")
	for _, issue := range dash.Recent {
		fmt.Fprintln(out, "  "+issueLine(issue))
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
