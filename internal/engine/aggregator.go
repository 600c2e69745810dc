package engine

import (
	"math"
	"sort"
	"sync"

	"github.com/aclements/go-moremath/stats"
)

// Summary is the descriptive statistics of one numeric column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarises every numeric column, in dataset column order.
// Non-numeric columns are skipped.
func (d *Dataset) Describe() []Summary {
	type partial struct {
		pos int
		sum Summary
	}

	results := make(chan partial, len(d.Columns))
	var wg sync.WaitGroup

	for pos, c := range d.Columns {
		if c.Kind != Numeric {
			continue
		}
		wg.Add(1)
		go func(pos int, c *Column) {
			defer wg.Done()
			results <- partial{pos: pos, sum: summarize(c)}
		}(pos, c)
	}

	go func() { wg.Wait(); close(results) }()

	var parts []partial
	for p := range results {
		parts = append(parts, p)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].pos < parts[j].pos })

	out := make([]Summary, len(parts))
	for i, p := range parts {
		out[i] = p.sum
	}
	return out
}

func summarize(c *Column) Summary {
	// Sort a copy; the dataset is shared read-only.
	s := stats.Sample{Xs: append([]float64(nil), c.Floats...)}
	s.Sort()
	lo, hi := s.Bounds()
	return Summary{
		Column: c.Name,
		Count:  len(s.Xs),
		Mean:   s.Mean(),
		Std:    s.StdDev(),
		Min:    lo,
		Q1:     quantile(s.Xs, 0.25),
		Median: quantile(s.Xs, 0.5),
		Q3:     quantile(s.Xs, 0.75),
		Max:    hi,
	}
}

// quantile interpolates linearly between the order statistics of
// sorted, at position (n-1)q.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
