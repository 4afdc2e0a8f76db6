package geo

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/jewarner57/weather-pages/internal/weather"
)

// The kelvins/geocoder package keys requests off a package-level ApiKey.
var googleMu sync.Mutex

// GoogleGeocoder resolves place names through the Google Geocoding API.
// Selected with GEOCODER=google; needs a separate API key from the weather
// provider's.
type GoogleGeocoder struct {
	apiKey string
}

// NewGoogleGeocoder creates a GoogleGeocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

// Locate resolves a city name to a coordinate.
func (g *GoogleGeocoder) Locate(ctx context.Context, city string) (weather.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinate{}, err
	}

	googleMu.Lock()
	defer googleMu.Unlock()
	geocoder.ApiKey = g.apiKey

	loc, err := geocoder.Geocoding(geocoder.Address{City: city})
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("%w: %q (%v)", ErrNoMatch, city, err)
	}

	return weather.Coordinate{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
