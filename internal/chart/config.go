package chart

import (
	"encoding/json"
	"sort"
)

// Params is the typed parameter set of one chart type.
type Params interface {
	ChartType() Type
	// Columns lists the dataset columns the chart reads, in key order.
	Columns() []string
}

// Configuration is a resolved chart: its type and the exact parameter
// set the renderer's constructor for that type accepts.
type Configuration struct {
	Type   Type   `json:"type"`
	Params Params `json:"params"`
}

// Keys returns the parameter keys present in the configuration, sorted.
func (c *Configuration) Keys() []string {
	m, err := c.Map()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns the parameters as a generic key/value map.
func (c *Configuration) Map() (map[string]any, error) {
	b, err := json.Marshal(c.Params)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Facet returns the facet settings of the chart, if it has any.
func (c *Configuration) Facet() (Facet, bool) {
	f, ok := c.Params.(interface{ FacetSpec() Facet })
	if !ok {
		return Facet{}, false
	}
	spec := f.FacetSpec()
	return spec, spec.Column != ""
}

// Common is accepted by every chart type.
type Common struct {
	Title string `json:"title"`
	Theme Theme  `json:"theme"`
}

func (c Common) CommonSpec() Common { return c }

// Facet splits a chart into sub-plots by the values of one column.
type Facet struct {
	Column    string   `json:"facet_column,omitempty"`
	WrapCount int      `json:"facet_wrap_count,omitempty"`
	Order     []string `json:"facet_order,omitempty"`
}

func (f Facet) FacetSpec() Facet { return f }

type ScatterConfig struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Facet
	MarginalX Marginal `json:"marginal_x,omitempty"`
	MarginalY Marginal `json:"marginal_y,omitempty"`
	Trendline string   `json:"trendline,omitempty"`
	Common
}

type BarConfig struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	Facet
	BarMode string         `json:"bar_mode,omitempty"`
	HLine   *ReferenceLine `json:"hline,omitempty"`
	Common
}

type LineConfig struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	Facet
	LineGroup string         `json:"line_group,omitempty"`
	HLine     *ReferenceLine `json:"hline,omitempty"`
	Common
}

type AreaConfig struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	Facet
	HLine *ReferenceLine `json:"hline,omitempty"`
	Common
}

type ScatterMatrixConfig struct {
	Dimensions []string `json:"dimensions"`
	Color      string   `json:"color,omitempty"`
	Size       string   `json:"size,omitempty"`
	Common
}

type PieConfig struct {
	Names  string `json:"names"`
	Values string `json:"values"`
	Color  string `json:"color,omitempty"`
	Common
}

// HierarchyConfig serves Sunburst and Treemap. Path is ordered from
// the root level down.
type HierarchyConfig struct {
	Type   Type     `json:"-"`
	Path   []string `json:"path"`
	Values string   `json:"values"`
	Color  string   `json:"color,omitempty"`
	Common
}

type HistogramConfig struct {
	X     string `json:"x"`
	Y     string `json:"y,omitempty"`
	Color string `json:"color,omitempty"`
	Facet
	Marginal Marginal `json:"marginal,omitempty"`
	Common
}

// DistributionConfig serves Box, Violin and Strip.
type DistributionConfig struct {
	Type  Type   `json:"-"`
	X     string `json:"x"`
	Y     string `json:"y"`
	Color string `json:"color,omitempty"`
	Facet
	Points      string `json:"points,omitempty"`
	Box         bool   `json:"box,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Common
}

// DensityConfig serves Density Contour and Density Heatmap.
type DensityConfig struct {
	Type Type   `json:"-"`
	X    string `json:"x"`
	Y    string `json:"y"`
	Facet
	MarginalX Marginal `json:"marginal_x,omitempty"`
	MarginalY Marginal `json:"marginal_y,omitempty"`
	Common
}

// PolarConfig serves the three polar types. R and Theta are the
// radius and angle columns.
type PolarConfig struct {
	Type          Type     `json:"-"`
	R             string   `json:"r"`
	Theta         string   `json:"theta"`
	Color         string   `json:"color,omitempty"`
	Symbol        string   `json:"symbol,omitempty"`
	LineClose     bool     `json:"line_close,omitempty"`
	ColorSequence []string `json:"color_sequence"`
	Common
}

type ScatterGeoConfig struct {
	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`
	Size      string `json:"size,omitempty"`
	HoverName string `json:"hover_name,omitempty"`
	Common
}

func (ScatterConfig) ChartType() Type        { return Scatter }
func (BarConfig) ChartType() Type            { return Bar }
func (LineConfig) ChartType() Type           { return Line }
func (AreaConfig) ChartType() Type           { return Area }
func (ScatterMatrixConfig) ChartType() Type  { return ScatterMatrix }
func (PieConfig) ChartType() Type            { return Pie }
func (c HierarchyConfig) ChartType() Type    { return c.Type }
func (HistogramConfig) ChartType() Type      { return Histogram }
func (c DistributionConfig) ChartType() Type { return c.Type }
func (c DensityConfig) ChartType() Type      { return c.Type }
func (c PolarConfig) ChartType() Type        { return c.Type }
func (ScatterGeoConfig) ChartType() Type     { return ScatterGeo }

func (c ScatterConfig) Columns() []string {
	return present(c.X, c.Y, c.Color, c.Size, c.Facet.Column)
}

func (c BarConfig) Columns() []string { return present(c.X, c.Y, c.Color, c.Facet.Column) }

func (c LineConfig) Columns() []string {
	return present(c.X, c.Y, c.Color, c.Facet.Column, c.LineGroup)
}

func (c AreaConfig) Columns() []string { return present(c.X, c.Y, c.Color, c.Facet.Column) }

func (c ScatterMatrixConfig) Columns() []string {
	return present(append(append([]string(nil), c.Dimensions...), c.Color, c.Size)...)
}

func (c PieConfig) Columns() []string { return present(c.Names, c.Values, c.Color) }

func (c HierarchyConfig) Columns() []string {
	return present(append(append([]string(nil), c.Path...), c.Values, c.Color)...)
}

func (c HistogramConfig) Columns() []string {
	return present(c.X, c.Y, c.Color, c.Facet.Column)
}

func (c DistributionConfig) Columns() []string {
	return present(c.X, c.Y, c.Color, c.Facet.Column)
}

func (c DensityConfig) Columns() []string { return present(c.X, c.Y, c.Facet.Column) }

func (c PolarConfig) Columns() []string { return present(c.R, c.Theta, c.Color, c.Symbol) }

func (c ScatterGeoConfig) Columns() []string {
	return present(c.Longitude, c.Latitude, c.Size, c.HoverName)
}

// present drops empty names and repeats, keeping first occurrences.
func present(names ...string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
