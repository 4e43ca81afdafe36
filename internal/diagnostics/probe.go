package diagnostics

import (
	"context"

	"civiceye/internal/api"
	"civiceye/internal/debug"
	appErrors "civiceye/internal/errors"
)

// Probe names a connectivity self-test.
type Probe string

const (
	ProbeBackend Probe = "backend"
	ProbeStorage Probe = "storage"
)

// Result is the user-facing outcome of a probe.
type Result struct {
	Probe  Probe
	OK     bool
	Title  string
	Detail string
	Err    error
}

var probeTitles = map[Probe][2]string{
	ProbeBackend: {"Backend connection is working!", "Backend connection failed"},
	ProbeStorage: {"Cloudinary connection is working!", "Cloudinary connection failed"},
}

// Run executes probe against client and, when journal is non-nil, records it.
// Journal failures are logged and never change the probe outcome.
func Run(ctx context.Context, client api.Client, journal *Journal, probe Probe) Result {
	var (
		res api.ProbeResult
		err error
		op  string
	)
	switch probe {
	case ProbeStorage:
		op = api.OpTestStorage
		res, err = client.TestStorage(ctx)
	default:
		probe, op = ProbeBackend, api.OpHealth
		res, err = client.Health(ctx)
	}

	titles := probeTitles[probe]
	out := Result{Probe: probe, OK: err == nil, Err: err}
	if err == nil {
		out.Title = titles[0]
		out.Detail = res.Message
	} else {
		out.Title = titles[1]
		out.Detail = appErrors.Message(err, api.FallbackMessage(op))
	}

	if journal != nil {
		if _, jerr := journal.Record(ctx, probe, out.OK, out.Detail); jerr != nil {
			debug.Error("diagnostics: journal write failed", jerr, "probe", string(probe))
		}
	}
	return out
}
