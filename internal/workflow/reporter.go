package workflow

import (
	"context"

	"civiceye/internal/api"
	"civiceye/internal/debug"
	"civiceye/internal/domain"
	"civiceye/internal/location"
)

// LocationSource is the subset of location.Resolver the report flow needs.
type LocationSource interface {
	CurrentLocation(ctx context.Context) (location.Position, error)
	ReverseGeocode(ctx context.Context, latitude, longitude float64) string
	SearchLocations(ctx context.Context, query string) []location.Suggestion
}

// ImageSource is the subset of media.Acquirer the report flow needs.
type ImageSource interface {
	Capture(ctx context.Context) (*domain.Image, error)
	Pick(ctx context.Context, path string) (*domain.Image, error)
	Validate(img domain.Image) error
	Compress(img domain.Image) domain.Image
}

// Reporter runs the device and network calls behind the report screen.
type Reporter struct {
	locations LocationSource
	images    ImageSource
	client    api.Client
}

// NewReporter wires the report flow.
func NewReporter(client api.Client, locations LocationSource, images ImageSource) *Reporter {
	return &Reporter{client: client, locations: locations, images: images}
}

// AutoFillLocation resolves the current position to an address. Callers treat
// failures as non-fatal and leave the location field untouched.
func (r *Reporter) AutoFillLocation(ctx context.Context) (string, error) {
	pos, err := r.locations.CurrentLocation(ctx)
	if err != nil {
		debug.Logf("report: location auto-fill skipped: %v", err)
		return "", err
	}
	return r.locations.ReverseGeocode(ctx, pos.Latitude, pos.Longitude), nil
}

// Suggest returns place suggestions for a partially typed location.
func (r *Reporter) Suggest(ctx context.Context, query string) []location.Suggestion {
	return r.locations.SearchLocations(ctx, query)
}

// Capture takes a photo and checks it against the size limit. Cancellation
// returns (nil, nil).
func (r *Reporter) Capture(ctx context.Context) (*domain.Image, error) {
	img, err := r.images.Capture(ctx)
	return r.prepare(img, err)
}

// Pick selects an existing photo and checks it against the size limit.
func (r *Reporter) Pick(ctx context.Context, path string) (*domain.Image, error) {
	img, err := r.images.Pick(ctx, path)
	return r.prepare(img, err)
}

func (r *Reporter) prepare(img *domain.Image, err error) (*domain.Image, error) {
	if err != nil || img == nil {
		return nil, err
	}
	if err := r.images.Validate(*img); err != nil {
		return nil, err
	}
	out := r.images.Compress(*img)
	return &out, nil
}

// Submit sends a validated payload.
func (r *Reporter) Submit(ctx context.Context, payload api.NewIssue) (domain.Issue, error) {
	return r.client.CreateIssue(ctx, payload)
}
