package debug

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var (
	reporting atomic.Bool

	// captureException is swapped in tests to observe reported errors.
	captureException = func(err error) { sentry.CaptureException(err) }
)

// InitSentry enables error reporting when dsn is non-empty. A blank dsn leaves
// reporting disabled and is not an error.
func InitSentry(dsn, environment, release string) error {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		reporting.Store(false)
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	}); err != nil {
		reporting.Store(false)
		return fmt.Errorf("init sentry: %w", err)
	}
	reporting.Store(true)
	Info("error reporting enabled", "environment", environment)
	return nil
}

// CaptureError reports err when error reporting is enabled.
func CaptureError(err error) {
	if err == nil || !reporting.Load() {
		return
	}
	captureException(err)
}

// Flush waits briefly for buffered reports to be delivered.
func Flush() {
	if !reporting.Load() {
		return
	}
	sentry.Flush(2 * time.Second)
}
