package mapping

// Component is a composite value: an ordered sequence of named sub-properties,
// each itself scalar or composite. Composite identifiers are Components.
type Component struct {
	// TypeName and TypeParams describe the logical type of the composite.
	TypeName   string
	TypeParams map[string]string
	// StructName names the Go struct backing the composite, when declared.
	StructName string

	owner      *Entity
	table      *Table
	properties []*Property
}

// NewComponent creates a component owned by the given entity, mapped to the
// owner's table.
func NewComponent(owner *Entity) *Component {
	c := &Component{owner: owner}
	if owner != nil {
		c.table = owner.Table
	}
	return c
}

// Owner returns the entity owning this component.
func (c *Component) Owner() *Entity { return c.owner }

// IsComposite implements Value.
func (c *Component) IsComposite() bool { return true }

// Table implements Value.
func (c *Component) Table() *Table { return c.table }

// AddProperty appends a sub-property in declaration order.
func (c *Component) AddProperty(p *Property) {
	c.properties = append(c.properties, p)
}

// Properties returns the sub-properties in declaration order.
func (c *Component) Properties() []*Property { return c.properties }

// PropertySpan returns the number of direct sub-properties.
func (c *Component) PropertySpan() int { return len(c.properties) }

// Selectables implements Value by aggregating the selectables of all
// sub-properties, in declaration order.
func (c *Component) Selectables() []Selectable {
	var sels []Selectable
	for _, p := range c.properties {
		if p.Value != nil {
			sels = append(sels, p.Value.Selectables()...)
		}
	}
	return sels
}

// CloneTypeFrom copies the type descriptor and backing struct name from
// another component. The parameter map is cloned.
func (c *Component) CloneTypeFrom(other *Component) {
	c.TypeName = other.TypeName
	c.StructName = other.StructName
	if other.TypeParams != nil {
		c.TypeParams = make(map[string]string, len(other.TypeParams))
		for k, v := range other.TypeParams {
			c.TypeParams[k] = v
		}
	}
}
