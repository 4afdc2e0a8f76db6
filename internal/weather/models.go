package weather

import (
	"errors"
	"time"
)

var (
	// ErrCityNotFound is returned when the upstream provider has no data
	// for the requested city name.
	ErrCityNotFound = errors.New("city not found")

	// ErrNoSamples is returned when an operation that needs at least one
	// sample receives an empty slice.
	ErrNoSamples = errors.New("no weather samples")
)

// Units selects the upstream measurement system. OpenWeatherMap calls the
// Kelvin system "standard" and treats any unrecognized value the same way.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
	UnitsStandard Units = "standard"
)

// Letter returns the display letter for a temperature in these units.
// Anything other than imperial or metric reads as Kelvin.
func (u Units) Letter() string {
	switch u {
	case UnitsImperial:
		return "F"
	case UnitsMetric:
		return "C"
	default:
		return "K"
	}
}

// Valid reports whether u is one of the three supported systems.
func (u Units) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric || u == UnitsStandard
}

// Coordinate is a geographic point. A failed lookup is signalled with an
// error, never with a zero Coordinate; (0, 0) is a real place in the Gulf
// of Guinea.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ConditionInfo is the provider's description of a single weather state.
type ConditionInfo struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions is the normalized shape of the provider's
// current-weather payload. Read-only and request-scoped.
type CurrentConditions struct {
	Name       string
	Coord      Coordinate
	Conditions []ConditionInfo
	Temp       float64
	Humidity   float64
	WindSpeed  float64
	Sunrise    int64
	Sunset     int64
}

// HourlySample is one hour of observed conditions.
type HourlySample struct {
	Dt         int64
	Temp       float64
	Conditions []ConditionInfo
}

// DailySample is one day of forecast conditions.
type DailySample struct {
	Dt         int64
	MinTemp    float64
	MaxTemp    float64
	Conditions []ConditionInfo
}

// WeatherSummary is the display-ready projection of current conditions.
// Sunrise, Sunset and LocalTime are in the location's own timezone.
type WeatherSummary struct {
	City        string
	Description string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Sunrise     time.Time
	Sunset      time.Time
	LocalTime   time.Time
	UnitsLetter string
	Icon        string
	Background  ImageCategory
}

// DailyStat is the display-ready projection of one forecast day.
type DailyStat struct {
	MinTemp     float64
	MaxTemp     float64
	Icon        string
	Description string
	Date        time.Time
}
