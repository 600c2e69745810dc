package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleShape(t *testing.T) {
	ds := Sample(SampleSeed, SampleRows)

	assert.Equal(t, SampleSource, ds.Source)
	assert.Equal(t, 100, ds.Len())
	assert.Equal(t, []string{"date", "branch", "gender", "status", "job", "salary", "balance", "percentage"}, ds.Names())

	kinds := map[string]Kind{
		"date": Date, "branch": Numeric, "gender": Categorical, "status": Categorical,
		"job": Categorical, "salary": Numeric, "balance": Numeric, "percentage": Numeric,
	}
	for name, want := range kinds {
		c, err := ds.Column(name)
		require.NoError(t, err)
		assert.Equal(t, want, c.Kind, name)
		assert.Equal(t, 100, c.Len(), name)
	}
}

func TestSampleValues(t *testing.T) {
	ds := Sample(SampleSeed, SampleRows)

	date, _ := ds.Column("date")
	first := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC)
	for _, d := range date.Times {
		assert.False(t, d.Before(first) || d.After(last), d)
	}

	branch, _ := ds.Column("branch")
	for _, b := range branch.Floats {
		assert.True(t, b >= 1 && b <= 5)
	}

	gender, _ := ds.Column("gender")
	for _, g := range gender.Dict {
		assert.Contains(t, []string{"Male", "Female"}, g)
	}
	job, _ := ds.Column("job")
	for _, j := range job.Dict {
		assert.Contains(t, []string{"Employed", "Business", "OFW", "Retired"}, j)
	}

	pct, _ := ds.Column("percentage")
	for _, p := range pct.Floats {
		assert.InDelta(t, 0.00025, p, 0.00001)
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := Sample(7, 50)
	b := Sample(7, 50)
	assert.Equal(t, a.Rows(0, 50), b.Rows(0, 50))

	c := Sample(8, 50)
	assert.NotEqual(t, a.Rows(0, 50), c.Rows(0, 50))
}

func TestRowsPagination(t *testing.T) {
	ds := Sample(SampleSeed, 10)
	assert.Len(t, ds.Rows(0, 4), 4)
	assert.Len(t, ds.Rows(8, 4), 2)
	assert.Empty(t, ds.Rows(10, 4))
	assert.Empty(t, ds.Rows(0, 0))
	assert.Len(t, ds.Rows(-3, 2)[0], 8)
}
