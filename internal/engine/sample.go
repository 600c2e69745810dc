package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/aclements/go-moremath/stats"
)

const (
	SampleSource = "sample"
	SampleRows   = 100
	SampleSeed   = 1
)

type weighted struct {
	label  string
	weight float64
}

var (
	sampleGenders = []weighted{{"Male", 1}, {"Female", 1}}
	sampleStatus  = []weighted{{"Single", 0.2}, {"Married", 0.7}, {"Widow", 0.1}}
	sampleJobs    = []weighted{{"Employed", 0.5}, {"Business", 0.1}, {"OFW", 0.35}, {"Retired", 0.05}}

	salaryDist     = stats.NormalDist{Mu: 30000, Sigma: 5000}
	balanceDist    = stats.NormalDist{Mu: 50000, Sigma: 2000}
	percentageDist = stats.NormalDist{Mu: 0.025, Sigma: 0.0001}
)

// Sample generates the demonstration dataset. The same seed always
// yields the same rows.
func Sample(seed int64, n int) *Dataset {
	if n <= 0 {
		n = SampleRows
	}
	r := rand.New(rand.NewSource(seed))

	first := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC)
	days := int(last.Sub(first).Hours()/24) + 1

	dates := make([]time.Time, n)
	branches := make([]float64, n)
	genders := make([]string, n)
	status := make([]string, n)
	jobs := make([]string, n)
	salary := make([]float64, n)
	balance := make([]float64, n)
	percentage := make([]float64, n)

	for i := 0; i < n; i++ {
		dates[i] = first.AddDate(0, 0, r.Intn(days))
		branches[i] = float64(1 + r.Intn(5))
		genders[i] = choose(r, sampleGenders)
		status[i] = choose(r, sampleStatus)
		jobs[i] = choose(r, sampleJobs)
		salary[i] = salaryDist.Rand(r)
		balance[i] = balanceDist.Rand(r)
		percentage[i] = percentageDist.Rand(r) / 100
	}

	cat := func(name string, vals []string) *Column {
		c, _ := newCategorical(context.Background(), name, vals)
		return c
	}
	return newDataset(SampleSource, []*Column{
		{Name: "date", Kind: Date, Times: dates, layout: "2006-01-02"},
		{Name: "branch", Kind: Numeric, Floats: branches},
		cat("gender", genders),
		cat("status", status),
		cat("job", jobs),
		{Name: "salary", Kind: Numeric, Floats: salary},
		{Name: "balance", Kind: Numeric, Floats: balance},
		{Name: "percentage", Kind: Numeric, Floats: percentage},
	})
}

func choose(r *rand.Rand, opts []weighted) string {
	var total float64
	for _, o := range opts {
		total += o.weight
	}
	x := r.Float64() * total
	for _, o := range opts {
		if x < o.weight {
			return o.label
		}
		x -= o.weight
	}
	return opts[len(opts)-1].label
}
