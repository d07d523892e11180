package mapping

// Value describes how a property is stored: a basic (scalar) value backed by
// columns or formulas, or a Component made of named sub-properties.
type Value interface {
	// IsComposite reports whether the value is a Component.
	IsComposite() bool
	// Selectables returns the columns and formulas backing the value, in
	// declaration order.
	Selectables() []Selectable
	// Table returns the table the value maps to.
	Table() *Table
}

// BasicValue is a scalar value: a type descriptor plus the selectables that
// back it.
type BasicValue struct {
	TypeName   string
	TypeParams map[string]string

	table       *Table
	selectables []Selectable
}

// NewBasicValue creates a basic value mapped to the given table.
func NewBasicValue(table *Table) *BasicValue {
	return &BasicValue{table: table}
}

// IsComposite implements Value.
func (v *BasicValue) IsComposite() bool { return false }

// Table implements Value.
func (v *BasicValue) Table() *Table { return v.table }

// Selectables implements Value.
func (v *BasicValue) Selectables() []Selectable { return v.selectables }

// AddColumn appends a column to the value's selectables.
func (v *BasicValue) AddColumn(c *Column) {
	v.selectables = append(v.selectables, c)
}

// AddFormula appends a formula to the value's selectables.
func (v *BasicValue) AddFormula(f *Formula) {
	v.selectables = append(v.selectables, f)
}

// Columns returns only the genuine columns among the value's selectables.
func (v *BasicValue) Columns() []*Column {
	var cols []*Column
	for _, s := range v.selectables {
		if c, ok := s.(*Column); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// CopyTypeFrom copies the type descriptor from another basic value. The
// parameter map is cloned so the two values never share mutable state.
func (v *BasicValue) CopyTypeFrom(other *BasicValue) {
	v.TypeName = other.TypeName
	if other.TypeParams != nil {
		v.TypeParams = make(map[string]string, len(other.TypeParams))
		for k, val := range other.TypeParams {
			v.TypeParams[k] = val
		}
	}
}
