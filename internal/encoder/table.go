package encoder

import (
	"errors"
	"fmt"
	"sync"

	"vigil/internal/vir"
)

// ErrDuplicatePredicate reports a second predicate for an already-bound
// name. Each type identity gets at most one predicate per verification
// unit.
var ErrDuplicatePredicate = errors.New("duplicate predicate name")

// Table is the name-indexed arena of finished predicates. Insertion
// order is remembered so emission stays deterministic.
type Table struct {
	mu     sync.RWMutex
	byName map[string]vir.Predicate
	order  []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string]vir.Predicate)}
}

// Insert binds a finished predicate to its name.
func (t *Table) Insert(p vir.Predicate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	name := p.Name()
	if _, exists := t.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePredicate, name)
	}
	t.byName[name] = p
	t.order = append(t.order, name)
	return nil
}

// Lookup resolves a predicate by name.
func (t *Table) Lookup(name string) (vir.Predicate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.byName[name]
	return p, ok
}

// Names returns the bound names in insertion order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Snapshot returns the predicates in insertion order.
func (t *Table) Snapshot() []vir.Predicate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]vir.Predicate, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Len reports the number of bound predicates.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}
