package render

import (
	"fmt"
	"io"
	"time"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"pedal/internal/chart"
	"pedal/internal/engine"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// SVGRenderer draws the cartesian point and line charts as a static SVG.
// Themes and reference lines are not drawn.
type SVGRenderer struct {
	Width, Height int
}

func NewSVGRenderer(width, height int) SVGRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return SVGRenderer{Width: width, Height: height}
}

func (SVGRenderer) ContentType() string { return "image/svg+xml" }

// Supports reports whether the renderer can draw charts of type t.
func (SVGRenderer) Supports(t chart.Type) bool {
	switch t {
	case chart.Scatter, chart.Line, chart.Area, chart.Strip:
		return true
	}
	return false
}

func (r SVGRenderer) Render(w io.Writer, cfg *chart.Configuration, ds *engine.Dataset) (err error) {
	if !r.Supports(cfg.Type) {
		return fmt.Errorf("%w: %s as svg", ErrUnsupported, cfg.Type)
	}
	rows, err := visibleRows(cfg, ds)
	if err != nil {
		return err
	}
	facet, faceted := cfg.Facet()

	cols := cfg.Params.Columns()
	tab, err := plotTable(ds, rows, cols, facet, faceted)
	if err != nil {
		return err
	}

	// go-gg reports bad column types by panicking.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render %s: %v", cfg.Type, p)
		}
	}()

	plot := gg.NewPlot(tab)
	switch p := cfg.Params.(type) {
	case chart.ScatterConfig:
		plot.Add(gg.LayerPoints{X: p.X, Y: p.Y, Color: p.Color, Size: p.Size})
		if p.Trendline != "" && numeric(ds, p.X) && numeric(ds, p.Y) {
			plot.Save()
			if p.Color != "" {
				plot.GroupBy(p.Color)
			}
			plot.Stat(ggstat.LeastSquares{X: p.X, Y: p.Y})
			plot.Add(gg.LayerLines{X: p.X, Y: p.Y, Color: p.Color})
			plot.Restore()
		}
	case chart.LineConfig:
		if p.LineGroup != "" {
			plot.GroupBy(p.LineGroup)
		}
		plot.Add(gg.LayerLines{X: p.X, Y: p.Y, Color: p.Color})
	case chart.AreaConfig:
		plot.Add(gg.LayerArea{X: p.X, Upper: p.Y, Fill: p.Color})
	case chart.DistributionConfig:
		x, y := p.X, p.Y
		if p.Orientation == "h" {
			x, y = y, x
		}
		plot.Add(gg.LayerPoints{X: x, Y: y, Color: p.Color})
	}

	if faceted {
		order := facet.Order
		plot.Add(gg.FacetWrap{
			Col:  facetKey,
			Cols: facet.WrapCount,
			Labeler: func(v interface{}) string {
				if i, ok := v.(int); ok && i >= 0 && i < len(order) {
					return order[i]
				}
				return fmt.Sprint(v)
			},
		})
	}
	if c, ok := cfg.Params.(interface{ CommonSpec() chart.Common }); ok && c.CommonSpec().Title != "" {
		plot.Add(gg.Title(c.CommonSpec().Title))
	}
	return plot.WriteSVG(w, r.Width, r.Height)
}

// facetKey holds each row's position in the facet order so panels are
// laid out in that order rather than sorted by label.
const facetKey = "\x00facet"

func plotTable(ds *engine.Dataset, rows []int, names []string, facet chart.Facet, faceted bool) (*table.Table, error) {
	n := rowCount(rows, ds)
	b := table.NewBuilder(nil)
	for _, name := range names {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		b.Add(name, columnSlice(col, rows, n))
	}
	if faceted {
		col, err := ds.Column(facet.Column)
		if err != nil {
			return nil, err
		}
		rank := make(map[string]int, len(facet.Order))
		for i, v := range facet.Order {
			rank[v] = i
		}
		pos := make([]int, n)
		for i := range pos {
			pos[i] = rank[col.Label(rowAt(rows, i))]
		}
		b.Add(facetKey, pos)
	}
	return b.Done(), nil
}

// columnSlice copies the visible rows of col. Dates become sortable
// strings since go-gg has no time scale.
func columnSlice(col *engine.Column, rows []int, n int) interface{} {
	switch col.Kind {
	case engine.Numeric:
		out := make([]float64, n)
		for i := range out {
			out[i] = col.Floats[rowAt(rows, i)]
		}
		return out
	case engine.Date:
		out := make([]string, n)
		for i := range out {
			out[i] = col.Times[rowAt(rows, i)].UTC().Format(time.DateTime)
		}
		return out
	}
	out := make([]string, n)
	for i := range out {
		out[i] = col.Label(rowAt(rows, i))
	}
	return out
}

func numeric(ds *engine.Dataset, name string) bool {
	c, err := ds.Column(name)
	return err == nil && c.Kind == engine.Numeric
}
