package weather

import (
	"errors"
	"testing"

	"github.com/jewarner57/weather-pages/internal/tz"
)

func TestBuildSummaryLondon(t *testing.T) {
	cur := CurrentConditions{
		Name:  "London",
		Coord: Coordinate{Lat: 51.5, Lon: -0.12},
		Conditions: []ConditionInfo{
			{Description: "light rain", Icon: "10d"},
		},
		Temp:      12.3,
		Humidity:  81,
		WindSpeed: 4.6,
		Sunrise:   1700030000,
		Sunset:    1700062000,
	}

	summary, err := BuildSummary(cur, UnitsMetric, tz.Resolver{})
	if err != nil {
		t.Fatalf("BuildSummary: unexpected error: %v", err)
	}

	if summary.City != "London" {
		t.Errorf("City = %q, want London", summary.City)
	}
	if summary.Description != "light rain" {
		t.Errorf("Description = %q, want light rain", summary.Description)
	}
	if summary.UnitsLetter != "C" {
		t.Errorf("UnitsLetter = %q, want C", summary.UnitsLetter)
	}
	if summary.Background != CategoryRainy {
		t.Errorf("Background = %q, want rainy", summary.Background)
	}

	// Sunrise and sunset must be in the city's zone, not the server's.
	for _, pair := range []struct {
		name string
		got  string
	}{
		{"Sunrise", summary.Sunrise.Location().String()},
		{"Sunset", summary.Sunset.Location().String()},
		{"LocalTime", summary.LocalTime.Location().String()},
	} {
		if pair.got != "Europe/London" {
			t.Errorf("%s zone = %q, want Europe/London", pair.name, pair.got)
		}
	}

	if summary.Sunrise.Unix() != cur.Sunrise {
		t.Errorf("Sunrise instant shifted: %d != %d", summary.Sunrise.Unix(), cur.Sunrise)
	}
}

func TestBuildSummaryNoConditions(t *testing.T) {
	cur := CurrentConditions{Name: "Nowhere"}
	_, err := BuildSummary(cur, UnitsMetric, tz.Resolver{})
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("BuildSummary without conditions: got %v, want ErrCityNotFound", err)
	}
}

func TestBuildSummaryBadIcon(t *testing.T) {
	cur := CurrentConditions{
		Name:       "London",
		Coord:      Coordinate{Lat: 51.5, Lon: -0.12},
		Conditions: []ConditionInfo{{Description: "odd", Icon: "??"}},
	}
	if _, err := BuildSummary(cur, UnitsMetric, tz.Resolver{}); err == nil {
		t.Fatal("BuildSummary with malformed icon: expected error, got nil")
	}
}
