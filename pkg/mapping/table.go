// Package mapping defines the relational mapping model produced by a metadata
// build: entities, identifiers, properties, values, and the columns and
// formulas that back them.
//
// The model is built in two phases. The primary bind creates entities and
// their value trees from parsed declarations; deferred second passes complete
// bindings that depend on other entities (identifier copies). After the build
// finishes the model is not mutated again.
package mapping

// Table identifies a relational table by schema and name.
type Table struct {
	Schema string
	Name   string
}

// QualifiedName returns the schema-qualified table name.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}
