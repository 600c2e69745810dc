package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryScopesSessions(t *testing.T) {
	sample := Sample(SampleSeed, 5)
	upload := newDataset("mine.csv", []*Column{{Name: "a", Kind: Numeric, Floats: []float64{1}}})

	r := NewRegistry(sample, 0)
	r.Put("alice", upload)

	assert.Same(t, upload, r.Get("alice"))
	assert.Same(t, sample, r.Get("bob"))

	r.Reset("alice")
	assert.Same(t, sample, r.Get("alice"))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sample := Sample(SampleSeed, 5)
	upload := newDataset("mine.csv", []*Column{{Name: "a", Kind: Numeric, Floats: []float64{1}}})

	r := NewRegistry(sample, time.Hour)
	r.now = func() time.Time { return now }
	r.Put("alice", upload)
	r.Put("bob", upload)

	now = now.Add(30 * time.Minute)
	assert.Same(t, upload, r.Get("alice"))

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.Prune())
	assert.Same(t, upload, r.Get("alice"))
	assert.Same(t, sample, r.Get("bob"))
}
