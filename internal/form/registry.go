package form

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps the open drafts, one per visitor session.
type Registry struct {
	deps *Dependencies

	mu     sync.Mutex
	states map[string]*State
}

// NewRegistry creates an empty registry sharing deps among its states.
func NewRegistry(deps Dependencies) *Registry {
	return &Registry{
		deps:   &deps,
		states: make(map[string]*State),
	}
}

// New opens a fresh draft with a random ID.
func (r *Registry) New() *State {
	st := newState(uuid.NewString(), r.deps)
	r.mu.Lock()
	r.states[st.id] = st
	r.mu.Unlock()
	return st
}

// Get returns the draft with the given ID.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[id]
	return st, ok
}

// GetOrNew returns the draft for id, or opens a new one when id is unknown.
func (r *Registry) GetOrNew(id string) *State {
	if id != "" {
		if st, ok := r.Get(id); ok {
			return st
		}
	}
	return r.New()
}

// Len reports how many drafts are open.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Prune discards drafts untouched for longer than maxIdle, releasing their
// staged photos. Drafts with a request in flight or a pending reset are kept.
func (r *Registry) Prune(ctx context.Context, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*State
	for id, st := range r.states {
		lastSeen, busy := st.idleSince()
		if !busy && lastSeen.Before(cutoff) {
			stale = append(stale, st)
			delete(r.states, id)
		}
	}
	r.mu.Unlock()

	for _, st := range stale {
		st.RemovePhoto(ctx)
	}
	return len(stale)
}

// Close stops every pending reset timer.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.states {
		st.Close()
	}
}
