package weather

import (
	"fmt"
	"time"

	"github.com/jewarner57/weather-pages/internal/tz"
)

// BuildSummary projects current conditions into their display form. Sunrise,
// sunset and the current clock all use the location's own timezone, falling
// back to UTC when the coordinates resolve to no zone.
func BuildSummary(cur CurrentConditions, units Units, tzr tz.Resolver) (WeatherSummary, error) {
	if len(cur.Conditions) == 0 {
		return WeatherSummary{}, fmt.Errorf("payload for %q has no weather entry: %w", cur.Name, ErrCityNotFound)
	}
	cond := cur.Conditions[0]

	background, err := CategorizeIcon(cond.Icon)
	if err != nil {
		return WeatherSummary{}, fmt.Errorf("categorize icon: %w", err)
	}

	lat, lon := cur.Coord.Lat, cur.Coord.Lon
	return WeatherSummary{
		City:        cur.Name,
		Description: cond.Description,
		Temperature: cur.Temp,
		Humidity:    cur.Humidity,
		WindSpeed:   cur.WindSpeed,
		Sunrise:     tzr.LocalTimeOrUTC(cur.Sunrise, lat, lon),
		Sunset:      tzr.LocalTimeOrUTC(cur.Sunset, lat, lon),
		LocalTime:   tzr.LocalTimeOrUTC(time.Now().Unix(), lat, lon),
		UnitsLetter: units.Letter(),
		Icon:        cond.Icon,
		Background:  background,
	}, nil
}
