package engine

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// missing holds the cell values treated as NA. Rows containing any of
// them, or any other spelling strconv parses as NaN, are dropped.
var missing = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "<NA>": {},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// checkEvery is how many cells a column builder converts between
// context checks.
const checkEvery = 4096

// Loader turns uploaded files into Datasets.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load picks a parser from the file extension of name.
func (l *Loader) Load(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt", "":
		return l.LoadCSV(ctx, r, name)
	case ".tsv":
		return l.loadDelimited(ctx, r, name, '\t')
	case ".xlsx", ".xlsm":
		return l.LoadXLSX(ctx, r, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadCSV parses comma-delimited text with a header row.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	return l.loadDelimited(ctx, r, name, ',')
}

func (l *Loader) loadDelimited(ctx context.Context, r io.Reader, name string, comma rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return l.build(ctx, name, records)
}

// LoadXLSX reads the first sheet of a workbook. The first row is the header.
func (l *Loader) LoadXLSX(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrMalformed, name)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: sheet %q is empty", ErrMalformed, name, sheets[0])
	}

	// GetRows trims trailing empty cells; pad them back so they count as missing.
	width := len(rows[0])
	for i, row := range rows {
		if len(row) > width {
			return nil, fmt.Errorf("%w: %s: row %d has %d cells, header has %d", ErrMalformed, name, i+1, len(row), width)
		}
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return l.build(ctx, name, rows)
}

func (l *Loader) build(ctx context.Context, name string, records [][]string) (*Dataset, error) {
	start := time.Now()
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrMalformed, name)
	}

	header := make([]string, len(records[0]))
	seen := make(map[string]struct{}, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, fmt.Errorf("%w: %s: column %d has no name", ErrMalformed, name, i+1)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate column %q", ErrMalformed, name, h)
		}
		seen[h] = struct{}{}
		header[i] = h
	}

	// Drop incomplete rows
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		complete := true
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
			if isMissing(rec[j]) {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, rec)
		}
	}
	dropped := len(records) - 1 - len(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRows, name)
	}

	// One builder per column
	cols := make([]*Column, len(header))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for j := range header {
		g.Go(func() error {
			c, err := buildColumn(gctx, header[j], rows, j)
			if err != nil {
				return err
			}
			cols[j] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.log.Info("dataset loaded",
		zap.String("source", name),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(cols)),
		zap.Int("dropped", dropped),
		zap.Duration("took", time.Since(start)))
	return newDataset(name, cols), nil
}

func isMissing(v string) bool {
	if _, na := missing[v]; na {
		return true
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && math.IsNaN(f)
}

func buildColumn(ctx context.Context, name string, rows [][]string, j int) (*Column, error) {
	vals := make([]string, len(rows))
	for i, row := range rows {
		vals[i] = row[j]
	}

	if floats, ok := parseFloats(vals); ok {
		for i, f := range floats {
			if math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: column %q: infinite value %q", ErrMalformed, name, vals[i])
			}
		}
		return &Column{Name: name, Kind: Numeric, Floats: floats}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if times, layout, ok := parseDates(vals); ok {
		return &Column{Name: name, Kind: Date, Times: times, layout: layout}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newCategorical(ctx, name, vals)
}

func parseFloats(vals []string) ([]float64, bool) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// parseDates succeeds only when one layout parses every value.
func parseDates(vals []string) ([]time.Time, string, bool) {
	for _, layout := range dateLayouts {
		out := make([]time.Time, len(vals))
		ok := true
		for i, v := range vals {
			t, err := time.Parse(layout, v)
			if err != nil {
				ok = false
				break
			}
			out[i] = t
		}
		if ok {
			return out, displayLayout(out), true
		}
	}
	return nil, "", false
}

func displayLayout(times []time.Time) string {
	for _, t := range times {
		if !t.Equal(t.Truncate(24 * time.Hour)) {
			return "2006-01-02 15:04:05"
		}
	}
	return "2006-01-02"
}

func newCategorical(ctx context.Context, name string, vals []string) (*Column, error) {
	c := &Column{Name: name, Kind: Categorical, IDs: make([]int32, len(vals))}
	ids := make(map[string]int32)
	for i, v := range vals {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		id, ok := ids[v]
		if !ok {
			id = int32(len(c.Dict))
			c.Dict = append(c.Dict, v)
			ids[v] = id
		}
		c.IDs[i] = id
	}
	return c, nil
}
