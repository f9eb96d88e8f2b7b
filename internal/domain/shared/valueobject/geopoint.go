package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GeoPoint is a value object representing a captured device location.
// A GeoPoint is either available (valid latitude/longitude) or explicitly
// unavailable. Callers that cannot obtain a fix must use UnavailableGeoPoint
// rather than substituting made-up coordinates; downstream consumers check
// IsAvailable before using the coordinates.
type GeoPoint struct {
	latitude  decimal.Decimal
	longitude decimal.Decimal
	available bool
}

// NewGeoPoint creates a GeoPoint from latitude/longitude in degrees
func NewGeoPoint(latitude, longitude decimal.Decimal) (GeoPoint, error) {
	if latitude.LessThan(decimal.NewFromInt(-90)) || latitude.GreaterThan(decimal.NewFromInt(90)) {
		return GeoPoint{}, fmt.Errorf("latitude %s out of range [-90, 90]", latitude)
	}
	if longitude.LessThan(decimal.NewFromInt(-180)) || longitude.GreaterThan(decimal.NewFromInt(180)) {
		return GeoPoint{}, fmt.Errorf("longitude %s out of range [-180, 180]", longitude)
	}
	return GeoPoint{latitude: latitude, longitude: longitude, available: true}, nil
}

// NewGeoPointFromFloat creates a GeoPoint from float64 coordinates
func NewGeoPointFromFloat(latitude, longitude float64) (GeoPoint, error) {
	return NewGeoPoint(decimal.NewFromFloat(latitude), decimal.NewFromFloat(longitude))
}

// UnavailableGeoPoint returns the explicit "location unavailable" value
func UnavailableGeoPoint() GeoPoint {
	return GeoPoint{}
}

// IsAvailable returns true if the point holds real coordinates
func (g GeoPoint) IsAvailable() bool {
	return g.available
}

// Latitude returns the latitude in degrees. Only meaningful when IsAvailable.
func (g GeoPoint) Latitude() decimal.Decimal {
	return g.latitude
}

// Longitude returns the longitude in degrees. Only meaningful when IsAvailable.
func (g GeoPoint) Longitude() decimal.Decimal {
	return g.longitude
}

// String returns a human-readable representation
func (g GeoPoint) String() string {
	if !g.available {
		return "unavailable"
	}
	return fmt.Sprintf("%s,%s", g.latitude.String(), g.longitude.String())
}
