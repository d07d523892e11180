package binder

import (
	"fmt"

	"github.com/mapbind-labs/mapbind/pkg/mapping"
)

// Metadata is the in-progress result of a metadata build: the entity graph
// plus the queue of deferred second passes. It is not safe for concurrent
// use; a build is a single-threaded batch.
type Metadata struct {
	entities map[string]*mapping.Entity
	order    []string

	secondPasses []SecondPass
}

// NewMetadata creates an empty metadata collector.
func NewMetadata() *Metadata {
	return &Metadata{entities: make(map[string]*mapping.Entity)}
}

// AddEntity registers an entity in the graph. Entity names must be unique.
func (m *Metadata) AddEntity(e *mapping.Entity) error {
	if _, exists := m.entities[e.Name]; exists {
		return fmt.Errorf("duplicate entity name: %s", e.Name)
	}
	m.entities[e.Name] = e
	m.order = append(m.order, e.Name)
	return nil
}

// Entity returns the entity registered under the given name.
func (m *Metadata) Entity(name string) (*mapping.Entity, bool) {
	e, ok := m.entities[name]
	return e, ok
}

// Entities returns all entities in registration order.
func (m *Metadata) Entities() []*mapping.Entity {
	out := make([]*mapping.Entity, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entities[name])
	}
	return out
}

// EntityCount returns the number of registered entities.
func (m *Metadata) EntityCount() int { return len(m.entities) }

// AddSecondPass queues a deferred pass for execution after the primary bind.
func (m *Metadata) AddSecondPass(p SecondPass) {
	m.secondPasses = append(m.secondPasses, p)
}

// SecondPasses returns the queued passes in registration order.
func (m *Metadata) SecondPasses() []SecondPass { return m.secondPasses }

// RunSecondPasses resolves all queued passes in registration order. Each pass
// runs exactly once; the first failure aborts the build and propagates, since
// partial metadata is unusable.
func (m *Metadata) RunSecondPasses() error {
	for _, p := range m.secondPasses {
		if err := p.Resolve(m.entities); err != nil {
			return fmt.Errorf("deferred binding against entity %q: %w", p.ReferencedEntityName(), err)
		}
	}
	return nil
}
