package chart

import (
	"fmt"
	"strconv"
)

// Columns is the read-only view of a dataset the resolver needs.
type Columns interface {
	HasColumn(name string) bool
	Distinct(name string) ([]string, error)
}

// Resolution is the outcome of resolving a selection. Either Config is
// set, or Missing lists the required roles still awaiting input.
type Resolution struct {
	Config  *Configuration
	Missing []Role
}

// Ready reports whether a configuration was produced.
func (r Resolution) Ready() bool { return r.Config != nil }

type builder func(sel Selection, data Columns, c Common) (Params, error)

var builders = map[Type]builder{
	Scatter:        buildScatter,
	Bar:            buildBar,
	Line:           buildLine,
	Area:           buildArea,
	ScatterMatrix:  buildScatterMatrix,
	Pie:            buildPie,
	Sunburst:       buildHierarchy(Sunburst),
	Treemap:        buildHierarchy(Treemap),
	Histogram:      buildHistogram,
	Box:            buildDistribution(Box),
	Violin:         buildDistribution(Violin),
	Strip:          buildDistribution(Strip),
	DensityContour: buildDensity(DensityContour),
	DensityHeatmap: buildDensity(DensityHeatmap),
	PolarScatter:   buildPolar(PolarScatter),
	PolarLine:      buildPolar(PolarLine),
	PolarBar:       buildPolar(PolarBar),
	ScatterGeo:     buildScatterGeo,
}

// Resolve validates sel against the contract of chart type t and the
// columns of data, and assembles the configuration for t.
//
// An unset required role is not an error: the returned Resolution lists
// the missing roles and carries no configuration. A role naming a column
// data does not have fails with ErrStaleColumn. The facet wrap count is
// passed through unchecked; hosts validate it with CheckWrapCount.
func Resolve(t Type, sel Selection, data Columns) (Resolution, error) {
	spec, ok := specs[t]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if missing := spec.missing(sel); len(missing) > 0 {
		return Resolution{Missing: missing}, nil
	}
	if err := checkColumns(spec, sel, data); err != nil {
		return Resolution{}, err
	}

	theme, err := ParseTheme(sel.Theme)
	if err != nil {
		return Resolution{}, err
	}
	params, err := builders[t](sel, data, Common{Title: sel.Title, Theme: theme})
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Config: &Configuration{Type: t, Params: params}}, nil
}

// checkColumns verifies every column the contract of the type reads.
func checkColumns(spec Spec, sel Selection, data Columns) error {
	for _, group := range [][]Role{spec.Required, spec.Optional} {
		for _, r := range group {
			if !r.IsColumn() {
				continue
			}
			if r.IsMulti() {
				seen := make(map[string]struct{})
				for _, name := range sel.columns(r) {
					if _, dup := seen[name]; dup {
						return fmt.Errorf("%w: %s lists %q twice", ErrInvalidOption, r, name)
					}
					seen[name] = struct{}{}
					if !data.HasColumn(name) {
						return fmt.Errorf("%w: %s %q", ErrStaleColumn, r, name)
					}
				}
				continue
			}
			if name := sel.column(r); name != "" && !data.HasColumn(name) {
				return fmt.Errorf("%w: %s %q", ErrStaleColumn, r, name)
			}
		}
	}
	return nil
}

// CheckWrapCount is the host-side bound for facet_wrap_count. A nil
// count is unset; any given count must lie in 1..6.
func CheckWrapCount(n *int) error {
	if n == nil || (*n >= 1 && *n <= 6) {
		return nil
	}
	return fmt.Errorf("%w: %d, want 1..6", ErrWrapCount, *n)
}

func buildScatter(sel Selection, data Columns, c Common) (Params, error) {
	facet, err := resolveFacet(sel, data, true)
	if err != nil {
		return nil, err
	}
	mx, err := marginal(RoleMarginalX, sel.MarginalX, scatterMarginals)
	if err != nil {
		return nil, err
	}
	my, err := marginal(RoleMarginalY, sel.MarginalY, scatterMarginals)
	if err != nil {
		return nil, err
	}
	trend, err := oneOf(RoleTrendline, sel.Trendline, trendlines)
	if err != nil {
		return nil, err
	}
	return ScatterConfig{
		X: sel.X, Y: sel.Y, Color: sel.Color, Size: sel.Size,
		Facet:     facet,
		MarginalX: mx, MarginalY: my, Trendline: trend,
		Common: c,
	}, nil
}

func buildBar(sel Selection, data Columns, c Common) (Params, error) {
	facet, err := resolveFacet(sel, data, true)
	if err != nil {
		return nil, err
	}
	mode, err := oneOf(RoleBarMode, sel.BarMode, barModes)
	if err != nil {
		return nil, err
	}
	hline, err := resolveHLine(sel.HLine)
	if err != nil {
		return nil, err
	}
	return BarConfig{
		X: sel.X, Y: sel.Y, Color: sel.Color,
		Facet:   facet,
		BarMode: mode, HLine: hline,
		Common: c,
	}, nil
}

func buildLine(sel Selection, data Columns, c Common) (Params, error) {
	facet, err := resolveFacet(sel, data, true)
	if err != nil {
		return nil, err
	}
	hline, err := resolveHLine(sel.HLine)
	if err != nil {
		return nil, err
	}
	return LineConfig{
		X: sel.X, Y: sel.Y, Color: sel.Color,
		Facet:     facet,
		LineGroup: sel.LineGroup, HLine: hline,
		Common: c,
	}, nil
}

func buildArea(sel Selection, data Columns, c Common) (Params, error) {
	facet, err := resolveFacet(sel, data, true)
	if err != nil {
		return nil, err
	}
	hline, err := resolveHLine(sel.HLine)
	if err != nil {
		return nil, err
	}
	return AreaConfig{
		X: sel.X, Y: sel.Y, Color: sel.Color,
		Facet: facet, HLine: hline,
		Common: c,
	}, nil
}

func buildScatterMatrix(sel Selection, _ Columns, c Common) (Params, error) {
	return ScatterMatrixConfig{
		Dimensions: append([]string(nil), sel.Dimensions...),
		Color:      sel.Color, Size: sel.Size,
		Common: c,
	}, nil
}

func buildPie(sel Selection, _ Columns, c Common) (Params, error) {
	return PieConfig{Names: sel.X, Values: sel.Y, Color: sel.Color, Common: c}, nil
}

func buildHierarchy(t Type) builder {
	return func(sel Selection, _ Columns, c Common) (Params, error) {
		return HierarchyConfig{
			Type:   t,
			Path:   append([]string(nil), sel.Path...),
			Values: sel.Y, Color: sel.Color,
			Common: c,
		}, nil
	}
}

func buildHistogram(sel Selection, data Columns, c Common) (Params, error) {
	facet, err := resolveFacet(sel, data, false)
	if err != nil {
		return nil, err
	}
	m, err := marginal(RoleMarginal, sel.Marginal, histogramMarginals)
	if err != nil {
		return nil, err
	}
	return HistogramConfig{
		X: sel.X, Y: sel.Y, Color: sel.Color,
		Facet: facet, Marginal: m,
		Common: c,
	}, nil
}

func buildDistribution(t Type) builder {
	return func(sel Selection, data Columns, c Common) (Params, error) {
		facet, err := resolveFacet(sel, data, true)
		if err != nil {
			return nil, err
		}
		cfg := DistributionConfig{
			Type: t,
			X:    sel.X, Y: sel.Y, Color: sel.Color,
			Facet:  facet,
			Common: c,
		}
		switch t {
		case Violin:
			cfg.Points, cfg.Box = "all", true
		case Strip:
			if cfg.Orientation, err = oneOf(RoleOrientation, sel.Orientation, orientations); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}
}

func buildDensity(t Type) builder {
	return func(sel Selection, data Columns, c Common) (Params, error) {
		facet, err := resolveFacet(sel, data, true)
		if err != nil {
			return nil, err
		}
		cfg := DensityConfig{Type: t, X: sel.X, Y: sel.Y, Facet: facet, Common: c}
		if t == DensityHeatmap {
			if cfg.MarginalX, err = marginal(RoleMarginalX, sel.MarginalX, heatmapMarginals); err != nil {
				return nil, err
			}
			if cfg.MarginalY, err = marginal(RoleMarginalY, sel.MarginalY, heatmapMarginals); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}
}

func buildPolar(t Type) builder {
	return func(sel Selection, _ Columns, c Common) (Params, error) {
		cfg := PolarConfig{
			Type:          t,
			R:             sel.X,
			Theta:         sel.Y,
			Color:         sel.Color,
			ColorSequence: append([]string(nil), plasmaR...),
			Common:        c,
		}
		switch t {
		case PolarScatter:
			cfg.Symbol = sel.Symbol
		case PolarLine:
			cfg.LineClose = true
		}
		return cfg, nil
	}
}

func buildScatterGeo(sel Selection, _ Columns, c Common) (Params, error) {
	return ScatterGeoConfig{
		Longitude: sel.Longitude, Latitude: sel.Latitude,
		Size: sel.Size, HoverName: sel.HoverName,
		Common: c,
	}, nil
}

func resolveHLine(h *ReferenceLine) (*ReferenceLine, error) {
	if h == nil {
		return nil, nil
	}
	pos, err := oneOf(RoleHLine, h.Position, labelPositions)
	if err != nil {
		return nil, err
	}
	return &ReferenceLine{Value: h.Value, Label: h.Label, Position: pos}, nil
}

// resolveFacet computes the facet settings. Without a facet column the
// chart is not faceted and no facet key is emitted.
func resolveFacet(sel Selection, data Columns, wrap bool) (Facet, error) {
	if sel.FacetColumn == "" {
		return Facet{}, nil
	}
	distinct, err := data.Distinct(sel.FacetColumn)
	if err != nil {
		return Facet{}, fmt.Errorf("%w: %s %q: %v", ErrStaleColumn, RoleFacetColumn, sel.FacetColumn, err)
	}
	f := Facet{Column: sel.FacetColumn}
	if wrap && sel.FacetWrapCount != nil {
		f.WrapCount = *sel.FacetWrapCount
	}
	if len(sel.FacetOrder) == 0 {
		f.Order = distinct
		return f, nil
	}

	known := make(map[string]struct{}, len(distinct))
	for _, v := range distinct {
		known[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(sel.FacetOrder))
	for _, v := range sel.FacetOrder {
		if _, ok := known[v]; !ok {
			return Facet{}, fmt.Errorf("%w: %q is not a value of %s", ErrInvalidFacetOrder, v, strconv.Quote(sel.FacetColumn))
		}
		if _, dup := seen[v]; dup {
			return Facet{}, fmt.Errorf("%w: %q listed twice", ErrInvalidFacetOrder, v)
		}
		seen[v] = struct{}{}
	}
	f.Order = append([]string(nil), sel.FacetOrder...)
	return f, nil
}
