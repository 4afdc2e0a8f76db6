// Package openweather is a typed client for the OpenWeatherMap endpoints the
// pages need: current conditions, the historical "timemachine" and the
// one-call daily forecast.
package openweather

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

// Client calls OpenWeatherMap. All requests carry the API key as a query
// parameter; resilience (backoff + circuit breaker) is shared across the
// three endpoints since they sit behind the same host and quota.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	retry   retryConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the given shared HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		client:  client,
		retry: retryConfig{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

func (c *Client) get(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	values.Set("appid", c.apiKey)
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	return doWithResilience(ctx, c.client, c.retry, c.circuit, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
}

// Current fetches current conditions for a city by name. An unknown city
// yields weather.ErrCityNotFound.
func (c *Client) Current(ctx context.Context, city string, units weather.Units) (weather.CurrentConditions, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("units", string(units))

	resp, err := c.get(ctx, "/weather", values)
	if err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("fetch current conditions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return weather.CurrentConditions{}, fmt.Errorf("%w: %q", weather.ErrCityNotFound, city)
	}
	if resp.StatusCode != http.StatusOK {
		return weather.CurrentConditions{}, fmt.Errorf("current conditions: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
		Weather []weather.ConditionInfo `json:"weather"`
		Main    struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("decode current conditions: %w", err)
	}

	// A 200 without coordinates means the provider matched nothing useful.
	if payload.Name == "" && len(payload.Weather) == 0 {
		return weather.CurrentConditions{}, fmt.Errorf("%w: %q", weather.ErrCityNotFound, city)
	}

	return weather.CurrentConditions{
		Name:       payload.Name,
		Coord:      weather.Coordinate{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		Conditions: payload.Weather,
		Temp:       payload.Main.Temp,
		Humidity:   payload.Main.Humidity,
		WindSpeed:  payload.Wind.Speed,
		Sunrise:    payload.Sys.Sunrise,
		Sunset:     payload.Sys.Sunset,
	}, nil
}

// Historical holds the timemachine response: conditions at the requested
// moment plus the surrounding day's hourly samples.
type Historical struct {
	Current weather.HourlySample
	Hourly  []weather.HourlySample
}

type hourlyPayload struct {
	Dt      int64                   `json:"dt"`
	Temp    float64                 `json:"temp"`
	Weather []weather.ConditionInfo `json:"weather"`
}

func (h hourlyPayload) sample() weather.HourlySample {
	return weather.HourlySample{Dt: h.Dt, Temp: h.Temp, Conditions: h.Weather}
}

// Timemachine fetches historical conditions for a coordinate at an epoch.
func (c *Client) Timemachine(ctx context.Context, coord weather.Coordinate, epoch int64, units weather.Units) (Historical, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	values.Set("dt", strconv.FormatInt(epoch, 10))
	values.Set("units", string(units))

	resp, err := c.get(ctx, "/onecall/timemachine", values)
	if err != nil {
		return Historical{}, fmt.Errorf("fetch historical conditions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Historical{}, fmt.Errorf("historical conditions: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Current hourlyPayload   `json:"current"`
		Hourly  []hourlyPayload `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Historical{}, fmt.Errorf("decode historical conditions: %w", err)
	}

	hist := Historical{Current: payload.Current.sample()}
	hist.Hourly = make([]weather.HourlySample, 0, len(payload.Hourly))
	for _, h := range payload.Hourly {
		hist.Hourly = append(hist.Hourly, h.sample())
	}
	return hist, nil
}

// Daily fetches the one-call daily forecast for a coordinate. The first
// entry is today.
func (c *Client) Daily(ctx context.Context, coord weather.Coordinate, units weather.Units) ([]weather.DailySample, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	values.Set("units", string(units))
	values.Set("exclude", "minutely,hourly,alerts")

	resp, err := c.get(ctx, "/onecall", values)
	if err != nil {
		return nil, fmt.Errorf("fetch daily forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily forecast: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			} `json:"temp"`
			Weather []weather.ConditionInfo `json:"weather"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode daily forecast: %w", err)
	}

	days := make([]weather.DailySample, 0, len(payload.Daily))
	for _, d := range payload.Daily {
		days = append(days, weather.DailySample{
			Dt:         d.Dt,
			MinTemp:    d.Temp.Min,
			MaxTemp:    d.Temp.Max,
			Conditions: d.Weather,
		})
	}
	return days, nil
}
