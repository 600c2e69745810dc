// Package render turns a resolved chart configuration and its dataset
// into output a client can display.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"pedal/internal/chart"
	"pedal/internal/engine"
)

var (
	ErrUnsupported   = errors.New("chart type not supported by renderer")
	ErrUnknownFormat = errors.New("unknown render format")
)

type Renderer interface {
	Render(w io.Writer, cfg *chart.Configuration, ds *engine.Dataset) error
	ContentType() string
}

// Options holds the canvas size used by image renderers.
type Options struct {
	Width  int
	Height int
}

// ForFormat returns the renderer for format, "json" or "svg". Empty
// means json.
func ForFormat(format string, opts Options) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return FigureRenderer{}, nil
	case "svg":
		return NewSVGRenderer(opts.Width, opts.Height), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// visibleRows returns the indexes of the rows drawn by cfg. With a facet
// column only rows whose category is in the facet order are kept; nil
// means every row.
func visibleRows(cfg *chart.Configuration, ds *engine.Dataset) ([]int, error) {
	f, ok := cfg.Facet()
	if !ok {
		return nil, nil
	}
	col, err := ds.Column(f.Column)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]struct{}, len(f.Order))
	for _, v := range f.Order {
		keep[v] = struct{}{}
	}
	rows := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		if _, ok := keep[col.Label(i)]; ok {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

func rowCount(rows []int, ds *engine.Dataset) int {
	if rows == nil {
		return ds.Len()
	}
	return len(rows)
}

func rowAt(rows []int, i int) int {
	if rows == nil {
		return i
	}
	return rows[i]
}
