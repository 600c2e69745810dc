package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pedal/internal/engine"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [file]",
		Short: "Print descriptive statistics of a dataset",
		Long: `Load a csv, tsv or xlsx file and print count, mean, standard deviation,
minimum, quartiles and maximum of every numeric column. Without a file the
sample dataset is described.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset(cmd, args)
			if err != nil {
				return err
			}
			return renderSummary(cmd.OutOrStdout(), ds)
		},
	}
}

// dataset loads the file named by args[0], or returns the sample.
func (a *app) dataset(cmd *cobra.Command, args []string) (*engine.Dataset, error) {
	if len(args) == 0 || args[0] == "" {
		return engine.Sample(a.cfg.Sample.Seed, a.cfg.Sample.Rows), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.NewLoader(a.log).Load(cmd.Context(), f, args[0])
}

func renderSummary(w io.Writer, ds *engine.Dataset) error {
	_, _ = fmt.Fprintf(w, "%s: %d rows, %d columns\n", ds.Source, ds.Len(), len(ds.Columns))

	sums := ds.Describe()
	if len(sums) == 0 {
		_, _ = fmt.Fprintln(w, "(no numeric columns)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
	for _, s := range sums {
		t.AppendRow(table.Row{
			s.Column, s.Count,
			formatStat(s.Mean), formatStat(s.Std), formatStat(s.Min),
			formatStat(s.Q1), formatStat(s.Median), formatStat(s.Q3), formatStat(s.Max),
		})
	}
	t.Render()
	return nil
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
