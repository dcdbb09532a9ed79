package query

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKind is returned for requests no runner is registered for.
var ErrUnknownKind = errors.New("unknown query kind")

// Registry maps query kinds to their runners.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu      sync.RWMutex
	runners map[Kind]Runner
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[Kind]Runner)}
}

// DefaultRegistry returns a Registry with the shortest and best runners.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ShortestRunner{})
	r.Register(BestRunner{})
	return r
}

// Register adds a runner. Panics on duplicate kind to surface misconfiguration early.
func (r *Registry) Register(rn Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.runners[rn.Kind()]; exists {
		panic(fmt.Sprintf("query registry: duplicate kind %q", rn.Kind()))
	}
	r.runners[rn.Kind()] = rn
}

// Get returns the runner for the given kind.
func (r *Registry) Get(kind Kind) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rn, ok := r.runners[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return rn, nil
}

// Kinds returns all registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.runners))
	for k := range r.runners {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
