// Package chart maps a chart type and a user's role selections onto a
// fully resolved, type-specific configuration for the chart renderer.
package chart

import (
	"fmt"
	"strings"
)

// Type is one of the supported chart types. The value is its wire name.
type Type string

const (
	Area           Type = "area"
	Bar            Type = "bar"
	Box            Type = "box"
	DensityContour Type = "density_contour"
	DensityHeatmap Type = "density_heatmap"
	Histogram      Type = "histogram"
	Line           Type = "line"
	Pie            Type = "pie"
	PolarBar       Type = "polar_bar"
	PolarLine      Type = "polar_line"
	PolarScatter   Type = "polar_scatter"
	Scatter        Type = "scatter"
	ScatterGeo     Type = "scatter_geo"
	ScatterMatrix  Type = "scatter_matrix"
	Strip          Type = "strip"
	Sunburst       Type = "sunburst"
	Treemap        Type = "treemap"
	Violin         Type = "violin"
)

// allTypes is in selector order.
var allTypes = []Type{
	Area, Bar, Box, DensityContour, DensityHeatmap, Histogram, Line, Pie,
	PolarBar, PolarLine, PolarScatter, Scatter, ScatterGeo, ScatterMatrix,
	Strip, Sunburst, Treemap, Violin,
}

var labels = map[Type]string{
	Area:           "Area",
	Bar:            "Bar",
	Box:            "Box",
	DensityContour: "Density Contour",
	DensityHeatmap: "Density Heatmap",
	Histogram:      "Histogram",
	Line:           "Line",
	Pie:            "Pie",
	PolarBar:       "Polar (Bar)",
	PolarLine:      "Polar (Line)",
	PolarScatter:   "Polar (Scatter)",
	Scatter:        "Scatter",
	ScatterGeo:     "Scatter Geo",
	ScatterMatrix:  "Scatter Matrix",
	Strip:          "Strip",
	Sunburst:       "Sunburst",
	Treemap:        "Treemap",
	Violin:         "Violin",
}

// Types returns every chart type in selector order.
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

// Label is the human readable name shown in the type selector.
func (t Type) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

// ParseType accepts a wire name or a label, ignoring case, so
// "Polar (Bar)", "polar-bar" and "polar_bar" are all PolarBar.
func ParseType(s string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("(", "", ")", "", "-", " ", "_", " ").Replace(n)
	n = strings.Join(strings.Fields(n), "_")
	if t := Type(n); t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}
