// Package httpapi serves the HTML pages and the chart image endpoint.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jewarner57/weather-pages/internal/chart"
	"github.com/jewarner57/weather-pages/internal/geo"
	"github.com/jewarner57/weather-pages/internal/tz"
	"github.com/jewarner57/weather-pages/internal/weather"
	"github.com/jewarner57/weather-pages/internal/weather/openweather"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// User-facing error messages, one per failure class.
const (
	msgCityNotFound = "The city name you entered was not found."
	msgInvalidDate  = "The date you entered is not valid"
	msgBadQuery     = "Please provide a city name and measurement units."
	msgUpstream     = "Weather data is temporarily unavailable. Please try again later."
)

// WeatherAPI is the slice of the OpenWeatherMap client the handlers need.
type WeatherAPI interface {
	Current(ctx context.Context, city string, units weather.Units) (weather.CurrentConditions, error)
	Timemachine(ctx context.Context, coord weather.Coordinate, epoch int64, units weather.Units) (openweather.Historical, error)
	Daily(ctx context.Context, coord weather.Coordinate, units weather.Units) ([]weather.DailySample, error)
}

// Handlers bundles the collaborators behind the page routes.
type Handlers struct {
	Weather     WeatherAPI
	Geocoder    geo.Geocoder
	TZ          tz.Resolver
	ChartWidth  int
	ChartHeight int
	Log         *zap.Logger
}

// conditionsQuery holds the query parameters shared by the current and
// forecast pages. The home form only offers the three supported unit
// systems; anything else is a hand-built URL and gets a 400.
type conditionsQuery struct {
	City  string `validate:"required"`
	Units string `validate:"required,oneof=imperial metric standard"`
}

// historicalQuery adds the date parameter. Date format is checked by
// time.Parse rather than a tag so the parse error maps to its own message.
type historicalQuery struct {
	City  string `validate:"required"`
	Date  string `validate:"required"`
	Units string `validate:"required,oneof=imperial metric standard"`
}

// RegisterRoutes wires the page handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.home)
	app.Get("/results", h.results)
	app.Get("/historical_results", h.historicalResults)
	app.Get("/forecast_results", h.forecastResults)
	app.Get("/graph/:lat/:lon/:units/:date", h.graph)
}

func (h *Handlers) home(c *fiber.Ctx) error {
	now := time.Now()
	return c.Render("home", fiber.Map{
		"MinDate": now.AddDate(0, 0, -5).Format(dateLayout),
		"MaxDate": now.Format(dateLayout),
	})
}

func (h *Handlers) results(c *fiber.Ctx) error {
	q := conditionsQuery{City: c.Query("city"), Units: c.Query("units")}
	if err := validate.Struct(q); err != nil {
		return h.renderError(c, fiber.StatusBadRequest, msgBadQuery)
	}
	units := weather.Units(q.Units)

	cur, err := h.Weather.Current(c.Context(), q.City, units)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	summary, err := weather.BuildSummary(cur, units, h.TZ)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	return c.Render("results", fiber.Map{"Summary": summary})
}

func (h *Handlers) historicalResults(c *fiber.Ctx) error {
	q := historicalQuery{City: c.Query("city"), Date: c.Query("date"), Units: c.Query("units")}
	if err := validate.Struct(q); err != nil {
		return h.renderError(c, fiber.StatusBadRequest, msgBadQuery)
	}
	units := weather.Units(q.Units)

	date, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return h.renderError(c, fiber.StatusBadRequest, msgInvalidDate)
	}

	coord, err := h.Geocoder.Locate(c.Context(), q.City)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	hist, err := h.Weather.Timemachine(c.Context(), coord, date.Unix(), units)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	minTemp, err := weather.MinTemp(hist.Hourly)
	if err != nil {
		return h.renderLookupError(c, err)
	}
	maxTemp, err := weather.MaxTemp(hist.Hourly)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	description := ""
	if len(hist.Current.Conditions) > 0 {
		description = hist.Current.Conditions[0].Description
	}

	return c.Render("historical_results", fiber.Map{
		"City":        q.City,
		"Date":        date,
		"Description": description,
		"Temperature": hist.Current.Temp,
		"MinTemp":     minTemp,
		"MaxTemp":     maxTemp,
		"UnitsLetter": units.Letter(),
		"GraphURL":    graphURL(coord, units, q.Date),
	})
}

func (h *Handlers) forecastResults(c *fiber.Ctx) error {
	q := conditionsQuery{City: c.Query("city"), Units: c.Query("units")}
	if err := validate.Struct(q); err != nil {
		return h.renderError(c, fiber.StatusBadRequest, msgBadQuery)
	}
	units := weather.Units(q.Units)

	coord, err := h.Geocoder.Locate(c.Context(), q.City)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	days, err := h.Weather.Daily(c.Context(), coord, units)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	return c.Render("forecast_results", fiber.Map{
		"City":        q.City,
		"UnitsLetter": units.Letter(),
		"Stats":       weather.BuildDailyStats(days, coord, h.TZ),
	})
}

// graph returns the hourly temperature chart for a location and date. It is
// referenced as an <img> source, so failures surface through the app's
// error handler rather than a rendered page.
func (h *Handlers) graph(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Params("lat"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Params("lon"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid longitude")
	}
	date, err := time.Parse(dateLayout, c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidDate)
	}
	units := weather.Units(c.Params("units"))
	if !units.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid units")
	}

	coord := weather.Coordinate{Lat: lat, Lon: lon}
	hist, err := h.Weather.Timemachine(c.Context(), coord, date.Unix(), units)
	if err != nil {
		h.Log.Error("timemachine fetch failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, msgUpstream)
	}

	temps := weather.Temps(hist.Hourly)
	cfg := chart.Config{
		Width:  h.ChartWidth,
		Height: h.ChartHeight,
		XLabel: "Hour",
		YLabel: fmt.Sprintf("Temperature (%s)", units.Letter()),
	}

	png, err := chart.RenderLine(cfg, chart.HourlyAxis(len(temps)), temps)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "not enough hourly data to draw a chart")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// renderLookupError maps an orchestration failure to the right page: misses
// get the not-found message, everything else is treated as an upstream
// fault and logged.
func (h *Handlers) renderLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, weather.ErrCityNotFound) || errors.Is(err, geo.ErrNoMatch) {
		return h.renderError(c, fiber.StatusNotFound, msgCityNotFound)
	}
	h.Log.Error("weather lookup failed", zap.String("path", c.Path()), zap.Error(err))
	return h.renderError(c, fiber.StatusBadGateway, msgUpstream)
}

func (h *Handlers) renderError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("error", fiber.Map{"Message": msg})
}

func graphURL(coord weather.Coordinate, units weather.Units, date string) string {
	return fmt.Sprintf("/graph/%s/%s/%s/%s",
		strconv.FormatFloat(coord.Lat, 'f', -1, 64),
		strconv.FormatFloat(coord.Lon, 'f', -1, 64),
		string(units),
		date,
	)
}
