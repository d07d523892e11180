package binder

import "github.com/mapbind-labs/mapbind/pkg/mapping"

// SecondPass is a unit of deferred metadata resolution. Passes are registered
// during the primary bind and resolved exactly once, in registration order,
// after the entity graph is complete.
type SecondPass interface {
	// ReferencedEntityName names the entity this pass depends on.
	ReferencedEntityName() string
	// Resolve completes the deferred binding against the full entity
	// graph. A returned error aborts the whole metadata build.
	Resolve(entities map[string]*mapping.Entity) error
}
