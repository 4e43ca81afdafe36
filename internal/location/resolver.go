package location

import (
	"context"
	"unicode/utf8"

	"civiceye/internal/config"
	"civiceye/internal/debug"
	appErrors "civiceye/internal/errors"
)

// MinQueryLength is the shortest query that triggers a place search.
const MinQueryLength = 3

const maxSuggestions = 5

// Resolver combines the geolocator, geocoder and place searcher.
type Resolver struct {
	opts     FixOptions
	geo      Geolocator
	geocoder Geocoder
	places   PlaceSearcher
}

// NewResolver wires the location services using the bounds in cfg.
func NewResolver(cfg config.Location, geo Geolocator, geocoder Geocoder, places PlaceSearcher) *Resolver {
	return &Resolver{
		opts: FixOptions{
			HighAccuracy: cfg.HighAccuracy,
			Timeout:      cfg.Timeout,
			MaximumAge:   cfg.MaximumAge,
		},
		geo:      geo,
		geocoder: geocoder,
		places:   places,
	}
}

// CurrentLocation asks for foreground permission and takes a single fix.
func (r *Resolver) CurrentLocation(ctx context.Context) (Position, error) {
	granted, err := r.geo.RequestPermission(ctx)
	if err != nil {
		debug.Logf("location: permission request failed: %v", err)
		granted = false
	}
	if !granted {
		return Position{}, appErrors.New(appErrors.CodePermissionDenied, "Location permission denied", err)
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	pos, err := r.geo.CurrentPosition(ctx, r.opts)
	if err != nil {
		debug.Logf("location: current position failed: %v", err)
		return Position{}, appErrors.New(appErrors.CodeLocationUnavailable, "Unable to get current location", err)
	}
	return pos, nil
}

// ReverseGeocode returns a readable address for the coordinates. It never fails:
// on error, no result or an all-empty address it returns the coordinates.
func (r *Resolver) ReverseGeocode(ctx context.Context, latitude, longitude float64) string {
	fallback := FormatCoords(latitude, longitude)
	if r.geocoder == nil {
		return fallback
	}
	results, err := r.geocoder.Reverse(ctx, latitude, longitude)
	if err != nil {
		debug.Logf("location: reverse geocode failed: %v", err)
		return fallback
	}
	if len(results) == 0 {
		return fallback
	}
	if formatted := FormatAddress(results[0]); formatted != "" {
		return formatted
	}
	return fallback
}

// SearchLocations returns up to five suggestions for query. Queries shorter than
// three characters and provider failures yield an empty list.
func (r *Resolver) SearchLocations(ctx context.Context, query string) []Suggestion {
	if utf8.RuneCountInString(query) < MinQueryLength || r.places == nil {
		return []Suggestion{}
	}
	results, err := r.places.Search(ctx, query)
	if err != nil {
		debug.Logf("location: search %q failed: %v", query, err)
		return []Suggestion{}
	}
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	suggestions := make([]Suggestion, 0, len(results))
	for _, res := range results {
		suggestions = append(suggestions, Suggestion{
			ID:          res.ID,
			DisplayName: res.DisplayName,
			Formatted:   FormatSuggestion(res),
			Latitude:    res.Latitude,
			Longitude:   res.Longitude,
		})
	}
	return suggestions
}

// LocationFromCoords reverse geocodes the coordinates into a Place.
func (r *Resolver) LocationFromCoords(ctx context.Context, latitude, longitude float64) Place {
	address := r.ReverseGeocode(ctx, latitude, longitude)
	return Place{
		Latitude:  latitude,
		Longitude: longitude,
		Address:   address,
		Formatted: address,
	}
}
