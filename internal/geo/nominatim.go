package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jewarner57/weather-pages/internal/weather"
)

// NominatimClient geocodes via the OpenStreetMap Nominatim search API.
// Nominatim requires an identifying User-Agent on every request.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
}

// NewNominatimClient creates a NominatimClient using the shared HTTP client.
func NewNominatimClient(client *http.Client) *NominatimClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &NominatimClient{
		baseURL:   "https://nominatim.openstreetmap.org/search",
		userAgent: "weather-pages",
		client:    client,
		circuit:   cb,
	}
}

// Locate resolves a city name to the coordinate of its first match.
func (c *NominatimClient) Locate(ctx context.Context, city string) (weather.Coordinate, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("format", "jsonv2")
	values.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("geocode %q: %w", city, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	// Nominatim encodes coordinates as strings.
	var matches []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return weather.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(matches) == 0 {
		return weather.Coordinate{}, fmt.Errorf("%w: %q", ErrNoMatch, city)
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("parse latitude %q: %w", matches[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("parse longitude %q: %w", matches[0].Lon, err)
	}

	return weather.Coordinate{Lat: lat, Lon: lon}, nil
}
