package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedal/internal/chart"
	"pedal/internal/engine"
)

func resolve(t *testing.T, typ chart.Type, sel chart.Selection, ds *engine.Dataset) *chart.Configuration {
	t.Helper()
	res, err := chart.Resolve(typ, sel, ds)
	require.NoError(t, err)
	require.True(t, res.Ready())
	return res.Config
}

func TestFigureReferencedColumnsOnly(t *testing.T) {
	ds := engine.Sample(engine.SampleSeed, engine.SampleRows)
	cfg := resolve(t, chart.Bar, chart.Selection{X: "branch", Y: "salary", Color: "gender", Theme: "dark"}, ds)

	var buf bytes.Buffer
	r := FigureRenderer{}
	require.NoError(t, r.Render(&buf, cfg, ds))
	assert.Equal(t, "application/json", r.ContentType())

	var fig struct {
		Type     string                     `json:"type"`
		Template string                     `json:"template"`
		Params   map[string]any             `json:"params"`
		Data     map[string]json.RawMessage `json:"data"`
		Rows     int                        `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fig))
	assert.Equal(t, "bar", fig.Type)
	assert.Equal(t, "plotly_dark", fig.Template)
	assert.Equal(t, "gender", fig.Params["color"])
	assert.Len(t, fig.Data, 3)
	assert.Contains(t, fig.Data, "branch")
	assert.Contains(t, fig.Data, "salary")
	assert.Contains(t, fig.Data, "gender")
	assert.Equal(t, 100, fig.Rows)
}

func TestFigureFacetSubset(t *testing.T) {
	ds := engine.Sample(engine.SampleSeed, engine.SampleRows)
	cfg := resolve(t, chart.Box, chart.Selection{
		X: "job", Y: "salary",
		FacetColumn: "status", FacetOrder: []string{"Widow", "Single"},
	}, ds)

	fig, err := NewFigure(cfg, ds)
	require.NoError(t, err)

	status, err := ds.Column("status")
	require.NoError(t, err)
	want := 0
	for i := 0; i < ds.Len(); i++ {
		if l := status.Label(i); l == "Widow" || l == "Single" {
			want++
		}
	}
	assert.Equal(t, want, fig.Rows)
	require.Len(t, fig.Data["status"], want)
	for _, v := range fig.Data["status"] {
		assert.NotEqual(t, "Married", v)
	}
	assert.Len(t, fig.Data["salary"], want)
}

func TestSVGScatter(t *testing.T) {
	ds := engine.Sample(engine.SampleSeed, engine.SampleRows)
	cfg := resolve(t, chart.Scatter, chart.Selection{
		X: "salary", Y: "balance", Color: "gender", Trendline: "ols", Title: "Pay",
	}, ds)

	var buf bytes.Buffer
	r := NewSVGRenderer(0, 0)
	require.NoError(t, r.Render(&buf, cfg, ds))
	assert.Equal(t, DefaultWidth, r.Width)
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestSVGFacetedLine(t *testing.T) {
	ds := engine.Sample(engine.SampleSeed, engine.SampleRows)
	cols := 2
	cfg := resolve(t, chart.Line, chart.Selection{
		X: "date", Y: "salary", FacetColumn: "gender", FacetWrapCount: &cols,
	}, ds)

	var buf bytes.Buffer
	require.NoError(t, NewSVGRenderer(640, 480).Render(&buf, cfg, ds))
	assert.Contains(t, buf.String(), "<svg")
}

func TestSVGUnsupported(t *testing.T) {
	ds := engine.Sample(engine.SampleSeed, engine.SampleRows)
	cfg := resolve(t, chart.Pie, chart.Selection{X: "job", Y: "salary"}, ds)

	err := NewSVGRenderer(0, 0).Render(&bytes.Buffer{}, cfg, ds)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("", Options{})
	require.NoError(t, err)
	assert.IsType(t, FigureRenderer{}, r)

	r, err = ForFormat("SVG", Options{Width: 300, Height: 200})
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", r.ContentType())
	assert.Equal(t, 300, r.(SVGRenderer).Width)

	_, err = ForFormat("png", Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
