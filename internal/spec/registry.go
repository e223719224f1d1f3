package spec

import (
	"fmt"
	"sort"
	"sync"
)

// Fragment is one registered annotation unit: its minted identity, its
// classified kind, the program element it is attached to, and the raw
// annotation text. The identity persists through the whole encoding
// pipeline as the join key between the fragment and everything derived
// from it.
type Fragment struct {
	ID     ID
	Kind   Kind
	Source string
	Raw    string
}

// Registry mints identities at registration time and retains the
// fragment records. Identity generation itself is coordination-free;
// the registry only locks to guard its own map.
type Registry struct {
	mu    sync.RWMutex
	gen   IDGenerator
	items map[ID]Fragment
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[ID]Fragment)}
}

// Register mints a fresh identity for the fragment and records it.
func (r *Registry) Register(kind Kind, source, raw string) Fragment {
	frag := Fragment{
		ID:     r.gen.Generate(),
		Kind:   kind,
		Source: source,
		Raw:    raw,
	}

	r.mu.Lock()
	r.items[frag.ID] = frag
	r.mu.Unlock()

	return frag
}

// RegisterKeyword classifies the annotation keyword first and registers
// the fragment only on success. A classification failure rejects this
// fragment alone; previously registered siblings are untouched.
func (r *Registry) RegisterKeyword(keyword, source, raw string) (Fragment, error) {
	kind, err := KindFromKeyword(keyword)
	if err != nil {
		return Fragment{}, err
	}
	return r.Register(kind, source, raw), nil
}

// Restore records a fragment that already owns an identity, typically
// one replayed from persistence. The identity must be real and unused.
func (r *Registry) Restore(frag Fragment) error {
	if frag.ID.IsDummy() {
		return fmt.Errorf("cannot restore fragment with the dummy identity")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[frag.ID]; ok {
		return fmt.Errorf("fragment %s already registered", frag.ID)
	}
	r.items[frag.ID] = frag
	return nil
}

// Lookup returns the fragment registered under the identity.
func (r *Registry) Lookup(id ID) (Fragment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frag, ok := r.items[id]
	return frag, ok
}

// Fragments returns all registered fragments sorted by identity, so
// emission order is deterministic across runs.
func (r *Registry) Fragments() []Fragment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Fragment, 0, len(r.items))
	for _, frag := range r.items {
		out = append(out, frag)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Compare(out[j].ID) < 0
	})
	return out
}

// Len returns the number of registered fragments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
