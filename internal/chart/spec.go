package chart

// Spec is the role contract of one chart type: which roles the UI
// offers for it and which of them must be bound before rendering.
type Spec struct {
	Type     Type              `json:"type"`
	Required []Role            `json:"required"`
	Optional []Role            `json:"optional,omitempty"`
	Extras   []Role            `json:"extras,omitempty"`
	Choices  map[Role][]string `json:"choices,omitempty"`
}

var (
	xy          = []Role{RoleX, RoleY}
	facetRoles  = []Role{RoleFacetColumn, RoleFacetWrapCount, RoleFacetOrder}
	facetNoWrap = []Role{RoleFacetColumn, RoleFacetOrder}
)

func roles(groups ...[]Role) []Role {
	var out []Role
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var specs = map[Type]Spec{
	Scatter: {
		Required: xy,
		Optional: roles([]Role{RoleColor, RoleSize}, facetRoles),
		Extras:   []Role{RoleMarginalX, RoleMarginalY, RoleTrendline},
		Choices: map[Role][]string{
			RoleMarginalX: scatterMarginals,
			RoleMarginalY: scatterMarginals,
			RoleTrendline: trendlines,
		},
	},
	Bar: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles),
		Extras:   []Role{RoleBarMode, RoleHLine},
		Choices:  map[Role][]string{RoleBarMode: barModes, RoleHLine: labelPositions},
	},
	Line: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles, []Role{RoleLineGroup}),
		Extras:   []Role{RoleHLine},
		Choices:  map[Role][]string{RoleHLine: labelPositions},
	},
	Area: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles),
		Extras:   []Role{RoleHLine},
		Choices:  map[Role][]string{RoleHLine: labelPositions},
	},
	ScatterMatrix: {
		Required: []Role{RoleDimensions},
		Optional: []Role{RoleColor, RoleSize},
	},
	Pie: {
		Required: xy,
		Optional: []Role{RoleColor},
	},
	Sunburst: {
		Required: []Role{RolePath, RoleY},
		Optional: []Role{RoleColor},
	},
	Treemap: {
		Required: []Role{RolePath, RoleY},
		Optional: []Role{RoleColor},
	},
	Histogram: {
		Required: []Role{RoleX},
		Optional: roles([]Role{RoleY, RoleColor}, facetNoWrap),
		Extras:   []Role{RoleMarginal},
		Choices:  map[Role][]string{RoleMarginal: histogramMarginals},
	},
	Box: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles),
	},
	Violin: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles),
	},
	Strip: {
		Required: xy,
		Optional: roles([]Role{RoleColor}, facetRoles),
		Extras:   []Role{RoleOrientation},
		Choices:  map[Role][]string{RoleOrientation: orientations},
	},
	DensityContour: {
		Required: xy,
		Optional: facetRoles,
	},
	DensityHeatmap: {
		Required: xy,
		Optional: facetRoles,
		Extras:   []Role{RoleMarginalX, RoleMarginalY},
		Choices: map[Role][]string{
			RoleMarginalX: heatmapMarginals,
			RoleMarginalY: heatmapMarginals,
		},
	},
	PolarScatter: {
		Required: xy,
		Optional: []Role{RoleColor, RoleSymbol},
	},
	PolarLine: {
		Required: xy,
		Optional: []Role{RoleColor},
	},
	PolarBar: {
		Required: xy,
		Optional: []Role{RoleColor},
	},
	ScatterGeo: {
		Required: []Role{RoleLongitude, RoleLatitude},
		Optional: []Role{RoleSize, RoleHoverName},
	},
}

// SpecFor returns the role contract of t. Title and theme are offered by
// every type and are listed as extras.
func SpecFor(t Type) (Spec, bool) {
	s, ok := specs[t]
	if !ok {
		return Spec{}, false
	}
	s.Type = t
	s.Extras = roles(s.Extras, []Role{RoleTitle, RoleTheme})
	choices := make(map[Role][]string, len(s.Choices)+1)
	for r, c := range s.Choices {
		choices[r] = append([]string(nil), c...)
	}
	th := make([]string, len(themes))
	for i, t := range themes {
		th[i] = string(t)
	}
	choices[RoleTheme] = th
	s.Choices = choices
	return s, true
}

// Specs returns the contract of every chart type in selector order.
func Specs() []Spec {
	out := make([]Spec, 0, len(allTypes))
	for _, t := range allTypes {
		s, _ := SpecFor(t)
		out = append(out, s)
	}
	return out
}

// Offers reports whether role r is part of t's contract.
func (s Spec) Offers(r Role) bool {
	for _, g := range [][]Role{s.Required, s.Optional, s.Extras} {
		for _, x := range g {
			if x == r {
				return true
			}
		}
	}
	return false
}

// missing lists the required roles sel leaves unset, in contract order.
func (s Spec) missing(sel Selection) []Role {
	var out []Role
	for _, r := range s.Required {
		if !sel.isSet(r) {
			out = append(out, r)
		}
	}
	return out
}
