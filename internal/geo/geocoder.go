// Package geo resolves free-text place names to coordinates.
package geo

import (
	"context"
	"errors"

	"github.com/jewarner57/weather-pages/internal/weather"
)

// ErrNoMatch is returned when a place name resolves to nothing. Callers get
// an explicit error, never a zero-valued coordinate.
var ErrNoMatch = errors.New("no match for place name")

// Geocoder resolves a city name to a coordinate.
type Geocoder interface {
	Locate(ctx context.Context, city string) (weather.Coordinate, error)
}
