package mapping

// Entity is a top-level mapped structural unit: a name, a table, an
// identifier, and an ordered sequence of properties.
type Entity struct {
	Name  string
	Table *Table

	// Identifier is the primary-key value: a BasicValue for simple keys or
	// a Component for composite keys.
	Identifier Value
	// IdentifierProperty is the property exposing the identifier on the
	// mapped struct.
	IdentifierProperty *Property

	properties []*Property
}

// AddProperty appends a non-identifier property in declaration order.
func (e *Entity) AddProperty(p *Property) {
	e.properties = append(e.properties, p)
}

// Properties returns the non-identifier properties in declaration order.
func (e *Entity) Properties() []*Property { return e.properties }
