package mapping

// Accessor strategies for properties.
const (
	AccessField    = "field"
	AccessProperty = "property"
)

// Property is a named, typed member of an entity or component. It belongs to
// exactly one owner.
type Property struct {
	Name string
	// Access names the accessor strategy used to read and write the
	// property on the mapped struct.
	Access string
	Value  Value
}

// IsComposite reports whether the property's value is a component.
func (p *Property) IsComposite() bool {
	return p.Value != nil && p.Value.IsComposite()
}
