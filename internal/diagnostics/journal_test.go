package diagnostics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"civiceye/internal/api"
	appErrors "civiceye/internal/errors"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", DBFileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	clock := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return clock }

	ctx := context.Background()
	if _, err := j.Record(ctx, ProbeBackend, true, "CivicEye API is running"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock = clock.Add(time.Minute)
	second, err := j.Record(ctx, ProbeStorage, false, "Failed to test Cloudinary connection")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if second.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	entries, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Probe != ProbeStorage || entries[0].OK || !entries[0].CheckedAt.Equal(clock) {
		t.Fatalf("unexpected newest entry %+v", entries[0])
	}
	if entries[1].Probe != ProbeBackend || !entries[1].OK || entries[1].Message != "CivicEye API is running" {
		t.Fatalf("unexpected oldest entry %+v", entries[1])
	}

	limited, err := j.Recent(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("Recent(1) = %v, %v", limited, err)
	}
}

func TestJournalPrune(t *testing.T) {
	j := openTestJournal(t)
	clock := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return clock }
	ctx := context.Background()

	_, _ = j.Record(ctx, ProbeBackend, true, "old")
	clock = clock.Add(48 * time.Hour)
	_, _ = j.Record(ctx, ProbeBackend, true, "new")

	n, err := j.Prune(ctx, 24*time.Hour)
	if err != nil || n != 1 {
		t.Fatalf("Prune = %d, %v", n, err)
	}
	entries, _ := j.Recent(ctx, 10)
	if len(entries) != 1 || entries[0].Message != "new" {
		t.Fatalf("unexpected entries after prune %+v", entries)
	}
}

func TestJournalReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)
	ctx := context.Background()
	j, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, _ = j.Record(ctx, ProbeBackend, true, "ok")
	_ = j.Close()

	j, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = j.Close() }()
	entries, err := j.Recent(ctx, 5)
	if err != nil || len(entries) != 1 {
		t.Fatalf("entries after reopen = %v, %v", entries, err)
	}
}

func TestOpenFailureIsJournalError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the database file should be cannot be opened.
	_, err := Open(context.Background(), dir)
	if !appErrors.IsCode(err, appErrors.CodeJournalFailed) {
		t.Fatalf("expected journal_failed, got %v", err)
	}
}

func TestRunRecordsOutcome(t *testing.T) {
	j := openTestJournal(t)
	mock := api.NewMockClient()
	mock.HealthFn = func(context.Context) (api.ProbeResult, error) {
		return api.ProbeResult{Message: "CivicEye API is running"}, nil
	}
	mock.TestStorageFn = func(context.Context) (api.ProbeResult, error) {
		return api.ProbeResult{}, &api.Error{Op: api.OpTestStorage, Message: "Failed to test Cloudinary connection", Err: errors.New("503")}
	}

	ok := Run(context.Background(), mock, j, ProbeBackend)
	if !ok.OK || ok.Title != "Backend connection is working!" || ok.Detail != "CivicEye API is running" {
		t.Fatalf("unexpected backend result %+v", ok)
	}
	failed := Run(context.Background(), mock, j, ProbeStorage)
	if failed.OK || failed.Title != "Cloudinary connection failed" || failed.Detail != "Failed to test Cloudinary connection" {
		t.Fatalf("unexpected storage result %+v", failed)
	}

	entries, err := j.Recent(context.Background(), 10)
	if err != nil || len(entries) != 2 {
		t.Fatalf("expected two journal entries, got %v %v", entries, err)
	}

	// A nil journal is allowed.
	if res := Run(context.Background(), mock, nil, ProbeBackend); !res.OK {
		t.Fatalf("Run without journal failed: %+v", res)
	}
}
