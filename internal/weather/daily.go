package weather

import (
	"github.com/jewarner57/weather-pages/internal/tz"
)

// BuildDailyStats projects forecast days into their display form. The first
// entry is today's weather, already shown on the current-conditions page, so
// it is dropped; the remaining days keep their order. An empty or
// single-element input yields an empty slice.
func BuildDailyStats(days []DailySample, coord Coordinate, tzr tz.Resolver) []DailyStat {
	if len(days) <= 1 {
		return []DailyStat{}
	}

	stats := make([]DailyStat, 0, len(days)-1)
	for _, day := range days[1:] {
		stat := DailyStat{
			MinTemp: day.MinTemp,
			MaxTemp: day.MaxTemp,
			Date:    tzr.LocalTimeOrUTC(day.Dt, coord.Lat, coord.Lon),
		}
		if len(day.Conditions) > 0 {
			stat.Icon = day.Conditions[0].Icon
			stat.Description = day.Conditions[0].Description
		}
		stats = append(stats, stat)
	}
	return stats
}

// MinTemp returns the lowest temperature across the samples.
func MinTemp(samples []HourlySample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	min := samples[0].Temp
	for _, s := range samples[1:] {
		if s.Temp < min {
			min = s.Temp
		}
	}
	return min, nil
}

// MaxTemp returns the highest temperature across the samples.
func MaxTemp(samples []HourlySample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	max := samples[0].Temp
	for _, s := range samples[1:] {
		if s.Temp > max {
			max = s.Temp
		}
	}
	return max, nil
}

// Temps extracts the temperature series from hourly samples, in order.
func Temps(samples []HourlySample) []float64 {
	temps := make([]float64, 0, len(samples))
	for _, s := range samples {
		temps = append(temps, s.Temp)
	}
	return temps
}
