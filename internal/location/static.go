package location

import (
	"context"

	"civiceye/internal/config"
)

// StaticGeolocator reports a fixed position. Terminals have no GPS, so the
// position and permission answer come from configuration.
type StaticGeolocator struct {
	Position Position
	Granted  bool
	// Err, when set, is returned by CurrentPosition.
	Err error
}

// NewStaticGeolocator reads location.latitude/longitude and device.location-permission.
func NewStaticGeolocator(loc config.Location, device config.Device) *StaticGeolocator {
	return &StaticGeolocator{
		Position: Position{Latitude: loc.Latitude, Longitude: loc.Longitude},
		Granted:  device.LocationPermission,
	}
}

func (s *StaticGeolocator) RequestPermission(context.Context) (bool, error) {
	return s.Granted, nil
}

func (s *StaticGeolocator) CurrentPosition(ctx context.Context, _ FixOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if s.Err != nil {
		return Position{}, s.Err
	}
	return s.Position, nil
}
