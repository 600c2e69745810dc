package render

import (
	"encoding/json"
	"io"

	"pedal/internal/chart"
	"pedal/internal/engine"
)

// Figure is the hand-off document for a browser-side plotting library:
// the chart constructor, its template, its keyword parameters and the
// referenced columns.
type Figure struct {
	Type     chart.Type       `json:"type"`
	Template string           `json:"template"`
	Params   chart.Params     `json:"params"`
	Data     map[string][]any `json:"data"`
	Rows     int              `json:"rows"`
}

// FigureRenderer writes a Figure as JSON.
type FigureRenderer struct{}

func (FigureRenderer) ContentType() string { return "application/json" }

func (FigureRenderer) Render(w io.Writer, cfg *chart.Configuration, ds *engine.Dataset) error {
	fig, err := NewFigure(cfg, ds)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(fig)
}

// NewFigure builds the figure for cfg. Only the columns the chart reads
// are included.
func NewFigure(cfg *chart.Configuration, ds *engine.Dataset) (*Figure, error) {
	rows, err := visibleRows(cfg, ds)
	if err != nil {
		return nil, err
	}
	n := rowCount(rows, ds)

	fig := &Figure{
		Type:   cfg.Type,
		Params: cfg.Params,
		Data:   make(map[string][]any),
		Rows:   n,
	}
	if c, ok := cfg.Params.(interface{ CommonSpec() chart.Common }); ok {
		fig.Template = c.CommonSpec().Theme.Template()
	}

	for _, name := range cfg.Params.Columns() {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		vals := make([]any, n)
		for i := range vals {
			vals[i] = col.Value(rowAt(rows, i))
		}
		fig.Data[name] = vals
	}
	return fig, nil
}
