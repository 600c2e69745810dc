package chart

// Entry describes one chart type for the type selector.
type Entry struct {
	Type        Type   `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Spec        Spec   `json:"spec"`
}

var descriptions = map[Type]string{
	Area:           "In a stacked area plot, each row is represented as a vertex of a polyline mark in 2D space. The area between successive polylines is filled.",
	Bar:            "In a bar plot, each row is represented as a rectangular mark.",
	Box:            "In a box plot, rows are grouped together into a box-and-whisker mark to visualize their distribution. The box spans from the first to the third quartile and the median is marked by a line inside the box.",
	DensityContour: "In a density contour plot, rows are grouped together into contour marks to visualize the 2D distribution of an aggregate such as the count or sum.",
	DensityHeatmap: "In a density heatmap, rows are grouped together into colored rectangular tiles to visualize the 2D distribution of an aggregate such as the count or sum.",
	Histogram:      "In a histogram, rows are grouped together into a rectangular mark to visualize the 1D distribution of an aggregate such as the count or sum.",
	Line:           "In a 2D line plot, each row is represented as a vertex of a polyline mark in 2D space.",
	Pie:            "In a pie plot, each row is represented as a sector of a pie.",
	PolarBar:       "In a polar bar plot, each row is represented as a wedge mark in polar coordinates.",
	PolarLine:      "In a polar line plot, each row is represented as a vertex of a polyline mark in polar coordinates.",
	PolarScatter:   "In a polar scatter plot, each row is represented by a symbol mark in polar coordinates.",
	Scatter:        "In a scatter plot, each row is represented by a symbol mark in 2D space.",
	ScatterGeo:     "In a geographic scatter plot, each row is represented by a symbol mark on a map.",
	ScatterMatrix:  "In a scatter plot matrix, each row is represented by multiple symbol marks, one in each cell of a grid of 2D scatter plots that plot each pair of dimensions against each other.",
	Strip:          "In a strip plot, each row is represented as a jittered mark within categories.",
	Sunburst:       "A sunburst plot represents hierarchical data as sectors laid out over several levels of concentric rings.",
	Treemap:        "A treemap plot represents hierarchical data as nested rectangular sectors.",
	Violin:         "In a violin plot, rows are grouped together into a curved mark to visualize their distribution.",
}

// Describe returns the description of t, or "" for an unknown type.
func Describe(t Type) string { return descriptions[t] }

// Catalog lists every chart type in selector order.
func Catalog() []Entry {
	out := make([]Entry, 0, len(allTypes))
	for _, t := range allTypes {
		s, _ := SpecFor(t)
		out = append(out, Entry{Type: t, Label: t.Label(), Description: descriptions[t], Spec: s})
	}
	return out
}
