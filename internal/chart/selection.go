package chart

// Role is a named slot a chart type exposes for a column or option.
type Role string

const (
	RoleX              Role = "x"
	RoleY              Role = "y"
	RoleColor          Role = "color"
	RoleSize           Role = "size"
	RoleSymbol         Role = "symbol"
	RoleFacetColumn    Role = "facet_column"
	RoleFacetWrapCount Role = "facet_wrap_count"
	RoleFacetOrder     Role = "facet_order"
	RoleLineGroup      Role = "line_group"
	RolePath           Role = "path"
	RoleDimensions     Role = "dimensions"
	RoleLongitude      Role = "longitude"
	RoleLatitude       Role = "latitude"
	RoleHoverName      Role = "hover_name"
	RoleMarginal       Role = "marginal"
	RoleMarginalX      Role = "marginal_x"
	RoleMarginalY      Role = "marginal_y"
	RoleTrendline      Role = "trendline"
	RoleBarMode        Role = "bar_mode"
	RoleHLine          Role = "hline"
	RoleOrientation    Role = "orientation"
	RoleTitle          Role = "title"
	RoleTheme          Role = "theme"
)

// minColumns is the number of columns a multi-select role needs
// before the chart can be drawn.
var minColumns = map[Role]int{
	RolePath:       1,
	RoleDimensions: 2,
}

// IsColumn reports whether the role binds dataset columns.
func (r Role) IsColumn() bool {
	switch r {
	case RoleX, RoleY, RoleColor, RoleSize, RoleSymbol, RoleFacetColumn,
		RoleLineGroup, RolePath, RoleDimensions, RoleLongitude, RoleLatitude, RoleHoverName:
		return true
	}
	return false
}

// IsMulti reports whether the role binds an ordered list of columns.
func (r Role) IsMulti() bool {
	_, ok := minColumns[r]
	return ok
}

// ReferenceLine is a dotted horizontal line with an optional annotation.
type ReferenceLine struct {
	Value    float64 `json:"value"`
	Label    string  `json:"label,omitempty"`
	Position string  `json:"label_position,omitempty"`
}

// Selection is everything the user picked in the role panel. The zero
// value of a field means the role is unset. Fields for roles the chosen
// chart type does not offer are ignored.
type Selection struct {
	X         string `json:"x,omitempty"`
	Y         string `json:"y,omitempty"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	LineGroup string `json:"line_group,omitempty"`
	HoverName string `json:"hover_name,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Latitude  string `json:"latitude,omitempty"`

	Path       []string `json:"path,omitempty"`
	Dimensions []string `json:"dimensions,omitempty"`

	FacetColumn    string   `json:"facet_column,omitempty"`
	FacetWrapCount *int     `json:"facet_wrap_count,omitempty"`
	FacetOrder     []string `json:"facet_order,omitempty"`

	Marginal    string         `json:"marginal,omitempty"`
	MarginalX   string         `json:"marginal_x,omitempty"`
	MarginalY   string         `json:"marginal_y,omitempty"`
	Trendline   string         `json:"trendline,omitempty"`
	BarMode     string         `json:"bar_mode,omitempty"`
	Orientation string         `json:"orientation,omitempty"`
	HLine       *ReferenceLine `json:"hline,omitempty"`

	Title string `json:"title,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func (s Selection) column(r Role) string {
	switch r {
	case RoleX:
		return s.X
	case RoleY:
		return s.Y
	case RoleColor:
		return s.Color
	case RoleSize:
		return s.Size
	case RoleSymbol:
		return s.Symbol
	case RoleFacetColumn:
		return s.FacetColumn
	case RoleLineGroup:
		return s.LineGroup
	case RoleLongitude:
		return s.Longitude
	case RoleLatitude:
		return s.Latitude
	case RoleHoverName:
		return s.HoverName
	}
	return ""
}

func (s Selection) columns(r Role) []string {
	switch r {
	case RolePath:
		return s.Path
	case RoleDimensions:
		return s.Dimensions
	}
	return nil
}

// isSet reports whether a role has a usable value.
func (s Selection) isSet(r Role) bool {
	if r.IsMulti() {
		return len(s.columns(r)) >= minColumns[r]
	}
	return s.column(r) != ""
}
