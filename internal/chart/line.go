// Package chart rasterizes temperature series into PNG line charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
)

var (
	// ErrEmptySeries is returned when there are too few points to draw.
	ErrEmptySeries = errors.New("chart needs at least two points")

	// ErrLengthMismatch is returned when the axes disagree on length.
	ErrLengthMismatch = errors.New("x and y series lengths differ")
)

// Config is the full styling state of one render call. Nothing is read from
// package globals, so concurrent renders with different configs are safe.
type Config struct {
	Width  int
	Height int
	XLabel string
	YLabel string
}

// DefaultConfig returns the standard figure size with the given axis labels.
func DefaultConfig(xLabel, yLabel string) Config {
	return Config{
		Width:  1024,
		Height: 400,
		XLabel: xLabel,
		YLabel: yLabel,
	}
}

// RenderLine draws a single-series line chart and returns the PNG bytes.
func RenderLine(cfg Config, xs, ys []float64) ([]byte, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, ErrEmptySeries
	}

	graph := gochart.Chart{
		Width:  cfg.Width,
		Height: cfg.Height,
		XAxis:  gochart.XAxis{Name: cfg.XLabel},
		YAxis:  gochart.YAxis{Name: cfg.YLabel},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// HourlyAxis returns the x-values 0..n-1 for an hour-indexed series.
func HourlyAxis(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
