// Package location resolves the device position, turns coordinates into
// addresses and searches places for the report form.
package location

import (
	"context"
	"time"
)

// Position is a single location fix.
type Position struct {
	Latitude  float64
	Longitude float64
	// Accuracy is the horizontal accuracy in metres; zero when unknown.
	Accuracy float64
}

// FixOptions bounds a location request.
type FixOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Address is a reverse-geocoded address. Any component may be empty.
type Address struct {
	Name     string
	Street   string
	District string
	City     string
	Region   string
}

// AddressDetails are the structured components of a place search hit.
type AddressDetails struct {
	Building    string `json:"building"`
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
}

// SearchResult is one raw hit from the place-search provider.
type SearchResult struct {
	ID          string
	DisplayName string
	Latitude    float64
	Longitude   float64
	Address     AddressDetails
}

// Suggestion is a place offered to the user while typing a location.
type Suggestion struct {
	ID          string
	DisplayName string
	Formatted   string
	Latitude    float64
	Longitude   float64
}

// Place pairs coordinates with their human-readable address.
type Place struct {
	Latitude  float64
	Longitude float64
	Address   string
	Formatted string
}

// Geolocator provides device position and its permission gate.
type Geolocator interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context, opts FixOptions) (Position, error)
}

// Geocoder turns coordinates into candidate addresses, best match first.
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) ([]Address, error)
}

// PlaceSearcher looks up places matching free text.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
