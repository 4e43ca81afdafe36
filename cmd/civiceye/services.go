package main

import (
	"context"
	"io"
	"net/http"

	"civiceye/internal/api"
	"civiceye/internal/config"
	"civiceye/internal/debug"
	"civiceye/internal/diagnostics"
	"civiceye/internal/location"
	"civiceye/internal/media"
	"civiceye/internal/ui"
	"civiceye/internal/workflow"

	"github.com/spf13/afero"
)

// services holds everything the app and the one-shot commands talk to.
type services struct {
	client    api.Client
	locations workflow.LocationSource
	images    workflow.ImageSource
	journal   *diagnostics.Journal
	haptics   ui.Haptics
	saveTheme func(name string) error
}

func buildServices(ctx context.Context, cfg *config.Config, workingDir string, terminal io.Writer) *services {
	fsys := afero.NewOsFs()
	client := api.NewHTTPClient(cfg.API, api.WithFs(fsys), api.WithUserAgent("CivicEye/"+Version))

	places := location.NewNominatim(cfg.Places, &http.Client{Timeout: cfg.Location.Timeout})
	geo := location.NewStaticGeolocator(cfg.Location, cfg.Device)

	images := media.NewAcquirer(
		cfg.Image,
		media.PermissionsFromConfig(cfg.Device),
		media.NewCommandPicker(cfg.Image.CaptureCommand, fsys),
		media.NewFilePicker(fsys),
		fsys,
	)

	// The journal only backs the settings history, so the app runs without it.
	journal, err := diagnostics.Open(ctx, cfg.DiagnosticsDB)
	if err != nil {
		debug.Error("main: diagnostics journal unavailable", err)
		journal = nil
	}

	return &services{
		client:    client,
		locations: location.NewResolver(cfg.Location, geo, places, places),
		images:    images,
		journal:   journal,
		haptics:   ui.NewBellHaptics(terminal, cfg.FeedbackBell),
		saveTheme: func(name string) error {
			return config.SaveTheme(workingDir, "", name)
		},
	}
}

func (s *services) Close() {
	if s == nil || s.journal == nil {
		return
	}
	if err := s.journal.Close(); err != nil {
		debug.Error("main: close journal", err)
	}
}
