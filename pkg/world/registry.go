package world

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps world names to worlds. It is safe for concurrent use; the
// worlds it returns are not.
type Registry struct {
	lock   sync.RWMutex
	worlds map[string]World
}

func NewRegistry() *Registry {
	return &Registry{
		worlds: make(map[string]World),
	}
}

// Add registers w under its name, replacing any world with the same name.
func (r *Registry) Add(w World) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.worlds[w.Name()] = w
}

func (r *Registry) Remove(name string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.worlds, name)
}

func (r *Registry) Get(name string) (World, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	w, ok := r.worlds[name]
	return w, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered world names in sorted order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	names := make([]string, 0, len(r.worlds))
	for name := range r.worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the live cell at loc.
func Resolve(lookup Lookup, loc BlockLocation) (Cell, error) {
	w, ok := lookup.Get(loc.World)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorld, loc.World)
	}
	return w.Cell(loc.Pos)
}
