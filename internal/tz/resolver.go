// Package tz resolves geographic coordinates to IANA timezones so that
// sunrise, sunset and "now" all display in the location's own local time
// regardless of where the server runs.
package tz

import (
	"errors"
	"fmt"
	"time"

	"github.com/zsefvlol/timezonemapper"
)

// ErrNoZone is returned when the lookup table yields no zone name for a
// coordinate. The bundled table assigns every point, ocean included, to its
// nearest zone, so this guards against gaps rather than open water.
var ErrNoZone = errors.New("no timezone for coordinates")

// Resolver maps lat/lon pairs to timezones. The zero value uses the
// embedded polygon table and is safe for concurrent use.
type Resolver struct {
	// lookup returns the IANA zone name for a coordinate, or "" when
	// unknown. Nil means the timezonemapper table.
	lookup func(lat, lon float64) string
}

func (r Resolver) zoneName(lat, lon float64) string {
	if r.lookup != nil {
		return r.lookup(lat, lon)
	}
	return timezonemapper.LatLngToTimezoneString(lat, lon)
}

// Zone returns the timezone containing the given coordinates.
func (r Resolver) Zone(lat, lon float64) (*time.Location, error) {
	name := r.zoneName(lat, lon)
	if name == "" {
		return nil, fmt.Errorf("%w: (%.4f, %.4f)", ErrNoZone, lat, lon)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// LocalTime converts an epoch timestamp to the local time of the zone
// containing the coordinates.
func (r Resolver) LocalTime(epoch int64, lat, lon float64) (time.Time, error) {
	loc, err := r.Zone(lat, lon)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(epoch, 0).In(loc), nil
}

// LocalTimeOrUTC is LocalTime with a UTC fallback for coordinates that
// resolve to no zone. Pages prefer a UTC clock over an error.
func (r Resolver) LocalTimeOrUTC(epoch int64, lat, lon float64) time.Time {
	t, err := r.LocalTime(epoch, lat, lon)
	if err != nil {
		return time.Unix(epoch, 0).UTC()
	}
	return t
}
