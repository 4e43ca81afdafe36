// Package diagnostics keeps a local SQLite journal of connectivity self-tests.
package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"civiceye/internal/config"
	appErrors "civiceye/internal/errors"
)

// DBFileName is the journal file created under the civiceye config dir.
const DBFileName = "diagnostics.db"

// Entry is one recorded probe run.
type Entry struct {
	ID        int64
	Probe     Probe
	OK        bool
	Message   string
	CheckedAt time.Time
}

// Journal persists probe results.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns ~/.civiceye/diagnostics.db.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}

func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens or creates the journal at path. An empty path uses DefaultPath.
func Open(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, journalError("locate journal", err)
		}
		path = p
	}
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, journalError("create journal directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, journalError("open journal", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, journalError("ping journal", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS probe_runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			probe      TEXT    NOT NULL,
			ok         INTEGER NOT NULL,
			message    TEXT    NOT NULL DEFAULT '',
			checked_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_probe_runs_checked_at ON probe_runs(checked_at);
	`); err != nil {
		_ = db.Close()
		return nil, journalError("migrate journal", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record stores one probe outcome.
func (j *Journal) Record(ctx context.Context, probe Probe, ok bool, message string) (Entry, error) {
	entry := Entry{
		Probe:     probe,
		OK:        ok,
		Message:   message,
		CheckedAt: j.now().UTC().Truncate(time.Millisecond),
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO probe_runs (probe, ok, message, checked_at) VALUES (?, ?, ?, ?)`,
		string(probe), boolToInt(ok), message, entry.CheckedAt.UnixMilli())
	if err != nil {
		return Entry{}, journalError("record probe", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, journalError("record probe id", err)
	}
	entry.ID = id
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, probe, ok, message, checked_at
		FROM probe_runs
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, journalError("query probes", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			probe   string
			ok      int
			checked int64
		)
		if err := rows.Scan(&e.ID, &probe, &ok, &e.Message, &checked); err != nil {
			return nil, journalError("scan probe", err)
		}
		e.Probe = Probe(probe)
		e.OK = ok != 0
		e.CheckedAt = time.UnixMilli(checked).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, journalError("iterate probes", err)
	}
	return entries, nil
}

// Prune deletes entries older than the cutoff and returns how many were removed.
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := j.now().Add(-olderThan).UnixMilli()
	res, err := j.db.ExecContext(ctx, `DELETE FROM probe_runs WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, journalError("prune probes", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, journalError("prune probes", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func journalError(action string, err error) error {
	return appErrors.New(appErrors.CodeJournalFailed, fmt.Sprintf("diagnostics journal: %s failed", action), err)
}
