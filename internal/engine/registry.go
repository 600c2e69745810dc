package engine

import (
	"sync"
	"time"
)

// Registry keeps one dataset per session. Sessions without an upload
// see the shared sample, which is never modified.
type Registry struct {
	mu       sync.Mutex
	sample   *Dataset
	maxIdle  time.Duration
	now      func() time.Time
	sessions map[string]*entry
}

type entry struct {
	ds   *Dataset
	seen time.Time
}

// NewRegistry returns a Registry. A maxIdle of zero disables expiry.
func NewRegistry(sample *Dataset, maxIdle time.Duration) *Registry {
	return &Registry{
		sample:   sample,
		maxIdle:  maxIdle,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Get returns the dataset for session id.
func (r *Registry) Get(id string) *Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok || r.expired(e) {
		delete(r.sessions, id)
		return r.sample
	}
	e.seen = r.now()
	return e.ds
}

func (r *Registry) Put(id string, ds *Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{ds: ds, seen: r.now()}
}

// Reset drops the session's upload so it sees the sample again.
func (r *Registry) Reset(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Prune removes idle sessions and reports how many were removed.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(e *entry) bool {
	return r.maxIdle > 0 && r.now().Sub(e.seen) > r.maxIdle
}
