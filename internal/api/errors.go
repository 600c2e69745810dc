package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pedal/internal/chart"
	"pedal/internal/engine"
	"pedal/internal/render"
)

// httpError maps domain errors onto HTTP statuses. Anything unknown is
// passed through for echo to report as a 500.
func httpError(err error) error {
	var status int
	switch {
	case errors.Is(err, chart.ErrUnknownType):
		status = http.StatusNotFound
	case errors.Is(err, chart.ErrStaleColumn):
		status = http.StatusConflict
	case errors.Is(err, chart.ErrInvalidOption),
		errors.Is(err, chart.ErrInvalidFacetOrder),
		errors.Is(err, chart.ErrWrapCount):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrMalformed),
		errors.Is(err, engine.ErrNoRows),
		errors.Is(err, engine.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrUnknownColumn):
		status = http.StatusNotFound
	case errors.Is(err, render.ErrUnsupported):
		status = http.StatusUnprocessableEntity
	default:
		return err
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}
