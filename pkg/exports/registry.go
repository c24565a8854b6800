// Package exports holds the registry of globals and filters visible to every
// rendered template. Collaborating packages populate a Builder before the
// rendering environment is constructed; the environment consumes an immutable
// Snapshot, so registrations after the snapshot never leak into a render.
package exports

import "sync"

// Filter is a template transformation function. The second argument carries
// the optional filter parameter and is nil when the template supplies none.
type Filter func(input any, param any) (any, error)

// Builder collects globals and filters prior to rendering. Registration is
// last-writer-wins on name collisions; both maps keep globals and filters in
// separate namespaces.
type Builder struct {
	mu      sync.Mutex
	globals map[string]any
	filters map[string]Filter
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		globals: make(map[string]any),
		filters: make(map[string]Filter),
	}
}

// RegisterGlobal exposes a named value to templates. A later registration
// under the same name silently replaces the earlier one.
func (b *Builder) RegisterGlobal(name string, value any) {
	if name == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.globals[name] = value
}

// RegisterFilter exposes a named filter to templates. A later registration
// under the same name silently replaces the earlier one.
func (b *Builder) RegisterFilter(name string, fn Filter) {
	if name == "" || fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters[name] = fn
}

// Filter looks up a registered filter by name.
func (b *Builder) Filter(name string) (Filter, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn, ok := b.filters[name]
	return fn, ok
}

// Clone returns an independent Builder seeded with the current contents.
// The driver clones the shared builder before applying per-run additions
// such as filter aliases.
func (b *Builder) Clone() *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()

	clone := NewBuilder()
	for name, value := range b.globals {
		clone.globals[name] = value
	}
	for name, fn := range b.filters {
		clone.filters[name] = fn
	}
	return clone
}

// Snapshot freezes the current registry contents. Later Builder writes do
// not affect the returned Snapshot.
func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		globals: make(map[string]any, len(b.globals)),
		filters: make(map[string]Filter, len(b.filters)),
	}
	for name, value := range b.globals {
		snap.globals[name] = value
	}
	for name, fn := range b.filters {
		snap.filters[name] = fn
	}
	return snap
}

// Snapshot is a frozen view of a Builder. It is safe to share between
// goroutines and renders.
type Snapshot struct {
	globals map[string]any
	filters map[string]Filter
}

// Globals returns a copy of the frozen global bindings.
func (s Snapshot) Globals() map[string]any {
	out := make(map[string]any, len(s.globals))
	for name, value := range s.globals {
		out[name] = value
	}
	return out
}

// Filters returns a copy of the frozen filter table.
func (s Snapshot) Filters() map[string]Filter {
	out := make(map[string]Filter, len(s.filters))
	for name, fn := range s.filters {
		out[name] = fn
	}
	return out
}
