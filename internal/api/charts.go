package api

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pedal/internal/chart"
	"pedal/internal/engine"
	"pedal/internal/models"
	"pedal/internal/render"
)

func (h *Handler) ListCharts(c echo.Context) error {
	entries := chart.Catalog()
	out := make([]models.ChartTypeInfo, len(entries))
	for i, e := range entries {
		out[i] = models.NewChartTypeInfo(e)
	}
	return c.JSON(http.StatusOK, out)
}

// ResolveChart answers with the configuration for the posted selection,
// or with the required roles that are still unset.
func (h *Handler) ResolveChart(c echo.Context) error {
	res, _, err := h.resolve(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.NewResolveResponse(res))
}

// RenderChart resolves and renders in one step. Nothing is rendered
// while required roles are unset.
func (h *Handler) RenderChart(c echo.Context) error {
	r, err := render.ForFormat(c.QueryParam("format"), h.opts.Render)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, ds, err := h.resolve(c)
	if err != nil {
		return err
	}
	if !res.Ready() {
		return c.NoContent(http.StatusNoContent)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, res.Config, ds); err != nil {
		h.log.Warn("render failed", zap.String("type", string(res.Config.Type)), zap.Error(err))
		return httpError(err)
	}
	return c.Blob(http.StatusOK, r.ContentType(), buf.Bytes())
}

// resolve returns the dataset it resolved against so a render uses the
// same one even if the session uploads in between.
func (h *Handler) resolve(c echo.Context) (chart.Resolution, *engine.Dataset, error) {
	t, err := chart.ParseType(c.Param("type"))
	if err != nil {
		return chart.Resolution{}, nil, httpError(err)
	}
	var sel chart.Selection
	if err := c.Bind(&sel); err != nil {
		return chart.Resolution{}, nil, err
	}
	if err := chart.CheckWrapCount(sel.FacetWrapCount); err != nil {
		return chart.Resolution{}, nil, httpError(err)
	}
	ds, err := h.dataset(c)
	if err != nil {
		return chart.Resolution{}, nil, err
	}
	res, err := chart.Resolve(t, sel, ds)
	if err != nil {
		h.log.Debug("resolve rejected", zap.String("type", string(t)), zap.Error(err))
		return chart.Resolution{}, nil, httpError(err)
	}
	return res, ds, nil
}
