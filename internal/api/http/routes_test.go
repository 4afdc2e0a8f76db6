package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jewarner57/weather-pages/internal/geo"
	"github.com/jewarner57/weather-pages/internal/tz"
	"github.com/jewarner57/weather-pages/internal/weather"
	"github.com/jewarner57/weather-pages/internal/weather/openweather"
)

type fakeWeather struct {
	cur     weather.CurrentConditions
	curErr  error
	hist    openweather.Historical
	histErr error
	days    []weather.DailySample
	daysErr error
}

func (f *fakeWeather) Current(_ context.Context, _ string, _ weather.Units) (weather.CurrentConditions, error) {
	return f.cur, f.curErr
}

func (f *fakeWeather) Timemachine(_ context.Context, _ weather.Coordinate, _ int64, _ weather.Units) (openweather.Historical, error) {
	return f.hist, f.histErr
}

func (f *fakeWeather) Daily(_ context.Context, _ weather.Coordinate, _ weather.Units) ([]weather.DailySample, error) {
	return f.days, f.daysErr
}

type fakeGeocoder struct {
	coord weather.Coordinate
	err   error
}

func (f *fakeGeocoder) Locate(_ context.Context, _ string) (weather.Coordinate, error) {
	return f.coord, f.err
}

func newTestApp(h *Handlers) *fiber.App {
	h.TZ = tz.Resolver{}
	if h.ChartWidth == 0 {
		h.ChartWidth = 640
		h.ChartHeight = 480
	}
	h.Log = zap.NewNop()

	app := fiber.New(fiber.Config{Views: NewEngine()})
	RegisterRoutes(app, h)
	return app
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s): %v", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func londonConditions() weather.CurrentConditions {
	return weather.CurrentConditions{
		Name:  "London",
		Coord: weather.Coordinate{Lat: 51.5, Lon: -0.12},
		Conditions: []weather.ConditionInfo{
			{Description: "light rain", Icon: "10d"},
		},
		Temp:      12.3,
		Humidity:  81,
		WindSpeed: 4.6,
		Sunrise:   1700030000,
		Sunset:    1700062000,
	}
}

func TestHomePage(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{}, Geocoder: &fakeGeocoder{}})

	resp, body := get(t, app, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, action := range []string{"/results", "/historical_results", "/forecast_results"} {
		if !strings.Contains(body, action) {
			t.Errorf("home page missing form action %q", action)
		}
	}
}

func TestResultsPage(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{cur: londonConditions()}, Geocoder: &fakeGeocoder{}})

	resp, body := get(t, app, "/results?city=London&units=metric")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}
	for _, want := range []string{"London", "light rain", "&deg;C", "bg-rainy"} {
		if !strings.Contains(body, want) {
			t.Errorf("results page missing %q", want)
		}
	}
}

func TestResultsUnknownCity(t *testing.T) {
	app := newTestApp(&Handlers{
		Weather:  &fakeWeather{curErr: fmt.Errorf("%w: %q", weather.ErrCityNotFound, "Nonexistent City123")},
		Geocoder: &fakeGeocoder{},
	})

	resp, body := get(t, app, "/results?city=Nonexistent+City123&units=metric")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, "The city name you entered was not found.") {
		t.Errorf("missing not-found message, got: %s", body)
	}
}

func TestResultsMissingUnits(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{}, Geocoder: &fakeGeocoder{}})

	resp, _ := get(t, app, "/results?city=London")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHistoricalInvalidDate(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{}, Geocoder: &fakeGeocoder{}})

	resp, body := get(t, app, "/historical_results?city=London&date=2024-13-40&units=metric")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "The date you entered is not valid") {
		t.Errorf("missing invalid-date message, got: %s", body)
	}
}

func TestHistoricalPage(t *testing.T) {
	hist := openweather.Historical{
		Current: weather.HourlySample{
			Temp:       10.5,
			Conditions: []weather.ConditionInfo{{Description: "overcast clouds", Icon: "04d"}},
		},
	}
	for i := 0; i < 24; i++ {
		hist.Hourly = append(hist.Hourly, weather.HourlySample{Temp: 5 + float64(i)})
	}

	app := newTestApp(&Handlers{
		Weather:  &fakeWeather{hist: hist},
		Geocoder: &fakeGeocoder{coord: weather.Coordinate{Lat: 51.5, Lon: -0.12}},
	})

	resp, body := get(t, app, "/historical_results?city=London&date=2024-05-01&units=metric")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}
	for _, want := range []string{"London", "overcast clouds", "/graph/51.5/-0.12/metric/2024-05-01"} {
		if !strings.Contains(body, want) {
			t.Errorf("historical page missing %q", want)
		}
	}
	// Min is hour 0, max is hour 23.
	if !strings.Contains(body, "5.0") || !strings.Contains(body, "28.0") {
		t.Errorf("historical page missing min/max temps, got: %s", body)
	}
}

func TestHistoricalGeocodeMiss(t *testing.T) {
	app := newTestApp(&Handlers{
		Weather:  &fakeWeather{},
		Geocoder: &fakeGeocoder{err: fmt.Errorf("%w: %q", geo.ErrNoMatch, "Nonexistent City123")},
	})

	resp, body := get(t, app, "/historical_results?city=Nonexistent+City123&date=2024-05-01&units=metric")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, "The city name you entered was not found.") {
		t.Errorf("missing not-found message, got: %s", body)
	}
}

func TestForecastPageDropsToday(t *testing.T) {
	days := []weather.DailySample{
		{Dt: 1700000000, MinTemp: 1, MaxTemp: 2, Conditions: []weather.ConditionInfo{{Description: "today-weather", Icon: "01d"}}},
		{Dt: 1700086400, MinTemp: 3, MaxTemp: 4, Conditions: []weather.ConditionInfo{{Description: "tomorrow-weather", Icon: "02d"}}},
		{Dt: 1700172800, MinTemp: 5, MaxTemp: 6, Conditions: []weather.ConditionInfo{{Description: "later-weather", Icon: "03d"}}},
	}

	app := newTestApp(&Handlers{
		Weather:  &fakeWeather{days: days},
		Geocoder: &fakeGeocoder{coord: weather.Coordinate{Lat: 51.5, Lon: -0.12}},
	})

	resp, body := get(t, app, "/forecast_results?city=London&units=imperial")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}
	if strings.Contains(body, "today-weather") {
		t.Error("forecast page includes today's entry")
	}
	for _, want := range []string{"tomorrow-weather", "later-weather", "&deg;F"} {
		if !strings.Contains(body, want) {
			t.Errorf("forecast page missing %q", want)
		}
	}
}

func TestGraphEndpoint(t *testing.T) {
	hist := openweather.Historical{}
	for i := 0; i < 24; i++ {
		hist.Hourly = append(hist.Hourly, weather.HourlySample{Temp: 10 + float64(i%12)})
	}

	app := newTestApp(&Handlers{Weather: &fakeWeather{hist: hist}, Geocoder: &fakeGeocoder{}})

	resp, body := get(t, app, "/graph/51.5/-0.12/metric/2024-05-01")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if !bytes.HasPrefix([]byte(body), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("graph response is not a PNG")
	}
}

func TestGraphBadDate(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{}, Geocoder: &fakeGeocoder{}})

	resp, _ := get(t, app, "/graph/51.5/-0.12/metric/not-a-date")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGraphBadUnits(t *testing.T) {
	app := newTestApp(&Handlers{Weather: &fakeWeather{}, Geocoder: &fakeGeocoder{}})

	// The same units whitelist as the query routes applies to the path
	// segment; garbage must not reach the provider and render as Kelvin.
	for _, units := range []string{"kelvin", "garbage"} {
		resp, _ := get(t, app, "/graph/51.5/-0.12/"+units+"/2024-05-01")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("units %q: status = %d, want 400", units, resp.StatusCode)
		}
	}
}
