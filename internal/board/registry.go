package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/frudas24/sketchslice/internal/geom"
)

// ErrBusy is returned when another client already drives a surface.
var ErrBusy = errors.New("surface already attached")

// Factory builds the board for a surface that is attached for the first time.
type Factory func(id string, layout geom.Layout) *Board

// Registry tracks boards by surface id and which client drives each one.
type Registry struct {
	mu      sync.Mutex
	factory Factory
	boards  map[string]*Board
	owners  map[string]string
}

// NewRegistry returns an empty registry. A nil factory builds plain boards.
func NewRegistry(factory Factory) *Registry {
	if factory == nil {
		factory = func(id string, layout geom.Layout) *Board { return New(id, layout) }
	}
	return &Registry{
		factory: factory,
		boards:  make(map[string]*Board),
		owners:  make(map[string]string),
	}
}

// Attach gives owner exclusive input on surface id, creating the board when
// needed. A non-empty layout replaces the stored one.
func (r *Registry) Attach(id, owner string, layout geom.Layout) (*Board, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("surface id is required")
	}
	r.mu.Lock()
	if current, ok := r.owners[id]; ok && current != owner {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrBusy, id)
	}
	b, ok := r.boards[id]
	if !ok {
		b = r.factory(id, layout)
		r.boards[id] = b
	}
	r.owners[id] = owner
	r.mu.Unlock()

	if !layout.Surface.Empty() {
		b.SetLayout(layout)
	}
	return b, nil
}

// Detach releases owner's hold on surface id and resets the board.
// It is a no-op when owner does not hold the surface.
func (r *Registry) Detach(id, owner string) {
	r.mu.Lock()
	if r.owners[id] != owner {
		r.mu.Unlock()
		return
	}
	delete(r.owners, id)
	b := r.boards[id]
	r.mu.Unlock()

	if b != nil {
		b.Reset()
	}
}

// Get returns the board for surface id.
func (r *Registry) Get(id string) (*Board, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[id]
	return b, ok
}

// IDs returns the known surface ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.boards))
	for id := range r.boards {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Attached reports whether some client currently drives surface id.
func (r *Registry) Attached(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.owners[id]
	return ok
}
