package binder

import (
	"strings"

	"github.com/mapbind-labs/mapbind/pkg/mapping"
	"github.com/mapbind-labs/mapbind/pkg/naming"
)

// NameSpec is a join column's declared name: either explicit or deferred to
// the binder. The zero value is deferred.
type NameSpec struct {
	name     string
	explicit bool
}

// ExplicitName returns a name spec carrying a declared column name.
func ExplicitName(name string) NameSpec {
	return NameSpec{name: name, explicit: true}
}

// DeferredName returns a name spec whose column name must be synthesized.
func DeferredName() NameSpec {
	return NameSpec{}
}

// Deferred reports whether the column name must be synthesized.
func (n NameSpec) Deferred() bool { return !n.explicit }

// Name returns the declared column name; empty when deferred.
func (n NameSpec) Name() string { return n.name }

// JoinColumn is one physical column on the dependent side of a foreign key
// used to reference another entity's identifier column.
type JoinColumn struct {
	// ColumnName is the dependent-side column name, explicit or deferred.
	ColumnName NameSpec
	// ReferencedName is the explicitly referenced identifier column, or
	// empty when correspondence is positional. Matching is
	// case-insensitive.
	ReferencedName string

	mappingColumn *mapping.Column
	value         *mapping.BasicValue
}

// NewJoinColumn creates a join column with its backing mapping column record.
func NewJoinColumn(name NameSpec, referenced string) *JoinColumn {
	return &JoinColumn{
		ColumnName:     name,
		ReferencedName: referenced,
		mappingColumn:  &mapping.Column{Name: name.Name()},
	}
}

// MappingColumn returns the backing column record. Size metadata on it is
// overwritten from the referenced column during identifier copy.
func (jc *JoinColumn) MappingColumn() *mapping.Column { return jc.mappingColumn }

// Value returns the value this join column was linked with, if any.
func (jc *JoinColumn) Value() *mapping.BasicValue { return jc.value }

// LinkValue associates the join column with a newly created value. The
// association is bidirectional: the join column records the value, and its
// backing mapping column now also addresses it. Linking is kept in one place
// so the copy resolver holds no hidden aliasing.
func (jc *JoinColumn) LinkValue(v *mapping.BasicValue) {
	jc.value = v
	jc.mappingColumn.Value = v
}

// applySizeFrom propagates length, precision, and scale from the referenced
// column to the backing mapping column.
func (jc *JoinColumn) applySizeFrom(col *mapping.Column) {
	jc.mappingColumn.Length = col.Length
	jc.mappingColumn.Precision = col.Precision
	jc.mappingColumn.Scale = col.Scale
}

// copyReferencedStructure synthesizes default join columns for a wholly
// name-deferred join column set: every genuine column of the referenced value
// yields a defaulted column on the new value. Formulas are skipped.
func (jc *JoinColumn) copyReferencedStructure(referenced *mapping.Entity, refValue *mapping.BasicValue, value *mapping.BasicValue, ctx *BuildContext) {
	for _, sel := range refValue.Selectables() {
		col, ok := sel.(*mapping.Column)
		if !ok {
			ctx.logger().Debug("skipping formula while defaulting join columns",
				"entity", referenced.Name)
			continue
		}
		logical := defaultJoinColumnName(referenced.Name, col.Name)
		physical := ctx.Naming.ToPhysicalColumnName(naming.ToIdentifier(logical), ctx.namingEnv())
		newCol := &mapping.Column{
			Name:      physical.Render(ctx.Dialect),
			Length:    col.Length,
			Precision: col.Precision,
			Scale:     col.Scale,
		}
		value.AddColumn(newCol)
		jc.applySizeFrom(col)
		jc.LinkValue(value)
		col.Value = value
	}
}

// defaultJoinColumnName derives a structurally unique default name for a join
// column from the referenced entity and column.
func defaultJoinColumnName(referencedEntity, columnName string) string {
	return strings.ToLower(referencedEntity) + "_" + columnName
}
