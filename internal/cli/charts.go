package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pedal/internal/chart"
	"pedal/internal/engine"
	"pedal/internal/models"
	"pedal/internal/render"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List chart types and their roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderTypes(cmd.OutOrStdout())
			return nil
		},
	}
}

func renderTypes(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"type", "label", "required", "optional", "extras"})
	for _, s := range chart.Specs() {
		t.AppendRow(table.Row{s.Type, s.Type.Label(), joinRoles(s.Required), joinRoles(s.Optional), joinRoles(s.Extras)})
	}
	t.Render()
}

func joinRoles(roles []chart.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// selectionFlags mirrors the role panel on the command line.
type selectionFlags struct {
	sel      chart.Selection
	file     string
	hline    float64
	hlLabel  string
	hlPos    string
	wrapFlag int
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	s := &f.sel
	fs.StringVar(&f.file, "file", "", "dataset file (default: the sample)")
	fs.StringVar(&s.X, "x", "", "x column")
	fs.StringVar(&s.Y, "y", "", "y column")
	fs.StringVar(&s.Color, "color", "", "color column")
	fs.StringVar(&s.Size, "size", "", "size column")
	fs.StringVar(&s.Symbol, "symbol", "", "symbol column")
	fs.StringVar(&s.LineGroup, "line-group", "", "line group column")
	fs.StringVar(&s.HoverName, "hover-name", "", "hover name column")
	fs.StringVar(&s.Longitude, "longitude", "", "longitude column")
	fs.StringVar(&s.Latitude, "latitude", "", "latitude column")
	fs.StringSliceVar(&s.Path, "path", nil, "hierarchy columns, root first")
	fs.StringSliceVar(&s.Dimensions, "dimensions", nil, "scatter matrix columns")
	fs.StringVar(&s.FacetColumn, "facet-column", "", "facet column")
	fs.IntVar(&f.wrapFlag, "facet-wrap-count", 0, "facet panels per row (1-6)")
	fs.StringSliceVar(&s.FacetOrder, "facet-order", nil, "facet categories to show, in order")
	fs.StringVar(&s.Marginal, "marginal", "", "histogram marginal")
	fs.StringVar(&s.MarginalX, "marginal-x", "", "x marginal")
	fs.StringVar(&s.MarginalY, "marginal-y", "", "y marginal")
	fs.StringVar(&s.Trendline, "trendline", "", "trendline (ols)")
	fs.StringVar(&s.BarMode, "bar-mode", "", "bar mode (group, relative, overlay)")
	fs.StringVar(&s.Orientation, "orientation", "", "strip orientation (h, v)")
	fs.Float64Var(&f.hline, "hline", 0, "horizontal reference line value")
	fs.StringVar(&f.hlLabel, "hline-label", "", "reference line annotation")
	fs.StringVar(&f.hlPos, "hline-position", "", "annotation position, e.g. \"top left\"")
	fs.StringVar(&s.Title, "title", "", "chart title")
	fs.StringVar(&s.Theme, "theme", "", "theme name")
}

func (f *selectionFlags) selection(fs *pflag.FlagSet) (chart.Selection, error) {
	sel := f.sel
	if fs.Changed("facet-wrap-count") {
		n := f.wrapFlag
		sel.FacetWrapCount = &n
	}
	if err := chart.CheckWrapCount(sel.FacetWrapCount); err != nil {
		return chart.Selection{}, err
	}
	if fs.Changed("hline") {
		sel.HLine = &chart.ReferenceLine{Value: f.hline, Label: f.hlLabel, Position: f.hlPos}
	}
	return sel, nil
}

func (a *app) resolve(cmd *cobra.Command, typ string, f *selectionFlags) (chart.Resolution, *engine.Dataset, error) {
	t, err := chart.ParseType(typ)
	if err != nil {
		return chart.Resolution{}, nil, err
	}
	sel, err := f.selection(cmd.Flags())
	if err != nil {
		return chart.Resolution{}, nil, err
	}
	ds, err := a.dataset(cmd, []string{f.file})
	if err != nil {
		return chart.Resolution{}, nil, err
	}
	res, err := chart.Resolve(t, sel, ds)
	return res, ds, err
}

func newResolveCmd(a *app) *cobra.Command {
	f := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "resolve <type>",
		Short: "Print the chart configuration for a role selection",
		Example: `  pedal resolve bar --x branch --y salary --color gender
  pedal resolve sunburst --path branch,job --y salary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := a.resolve(cmd, args[0], f)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.NewResolveResponse(res))
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	f := &selectionFlags{}
	var format, out string
	cmd := &cobra.Command{
		Use:   "render <type>",
		Short: "Render a chart as a JSON figure or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := render.ForFormat(format, render.Options{Width: a.cfg.Render.Width, Height: a.cfg.Render.Height})
			if err != nil {
				return err
			}
			res, ds, err := a.resolve(cmd, args[0], f)
			if err != nil {
				return err
			}
			if !res.Ready() {
				return fmt.Errorf("awaiting input: set %s", joinRoles(res.Missing))
			}

			var buf bytes.Buffer
			if err := r.Render(&buf, res.Config, ds); err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			return os.WriteFile(out, buf.Bytes(), 0o644)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, svg)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
