package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_QualifiedName(t *testing.T) {
	assert.Equal(t, "orders", (&Table{Name: "orders"}).QualifiedName())
	assert.Equal(t, "sales.orders", (&Table{Schema: "sales", Name: "orders"}).QualifiedName())
}

func TestBasicValue_Selectables(t *testing.T) {
	table := &Table{Name: "t"}
	v := NewBasicValue(table)
	v.AddColumn(&Column{Name: "a"})
	v.AddFormula(&Formula{Expression: "now()"})
	v.AddColumn(&Column{Name: "b"})

	require.Len(t, v.Selectables(), 3)
	assert.False(t, v.Selectables()[0].IsFormula())
	assert.True(t, v.Selectables()[1].IsFormula())

	// Columns filters formulas but keeps declaration order.
	cols := v.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "a", cols[0].Name)
	assert.Equal(t, "b", cols[1].Name)

	assert.Same(t, table, v.Table())
	assert.False(t, v.IsComposite())
}

func TestBasicValue_CopyTypeFrom(t *testing.T) {
	src := NewBasicValue(nil)
	src.TypeName = "enum"
	src.TypeParams = map[string]string{"values": "A,B"}

	dst := NewBasicValue(nil)
	dst.CopyTypeFrom(src)

	assert.Equal(t, "enum", dst.TypeName)
	assert.Equal(t, "A,B", dst.TypeParams["values"])

	src.TypeParams["values"] = "C"
	assert.Equal(t, "A,B", dst.TypeParams["values"], "parameter maps must not be shared")
}

func TestComponent_AggregatesSelectables(t *testing.T) {
	e := &Entity{Name: "E", Table: &Table{Name: "t"}}
	comp := NewComponent(e)
	assert.Same(t, e.Table, comp.Table())
	assert.True(t, comp.IsComposite())

	first := NewBasicValue(e.Table)
	first.AddColumn(&Column{Name: "a"})
	comp.AddProperty(&Property{Name: "pa", Value: first})

	nested := NewComponent(e)
	inner := NewBasicValue(e.Table)
	inner.AddColumn(&Column{Name: "b"})
	nested.AddProperty(&Property{Name: "pb", Value: inner})
	comp.AddProperty(&Property{Name: "nested", Value: nested})

	assert.Equal(t, 2, comp.PropertySpan())

	sels := comp.Selectables()
	require.Len(t, sels, 2)
	assert.Equal(t, "a", sels[0].(*Column).Name)
	assert.Equal(t, "b", sels[1].(*Column).Name)
}

func TestComponent_CloneTypeFrom(t *testing.T) {
	src := NewComponent(nil)
	src.TypeName = "CustomerKey"
	src.StructName = "CustomerKey"
	src.TypeParams = map[string]string{"embedded": "true"}

	dst := NewComponent(nil)
	dst.CloneTypeFrom(src)

	assert.Equal(t, "CustomerKey", dst.TypeName)
	assert.Equal(t, "CustomerKey", dst.StructName)

	src.TypeParams["embedded"] = "false"
	assert.Equal(t, "true", dst.TypeParams["embedded"])
}

func TestProperty_IsComposite(t *testing.T) {
	basic := &Property{Name: "p", Value: NewBasicValue(nil)}
	assert.False(t, basic.IsComposite())

	composite := &Property{Name: "p", Value: NewComponent(nil)}
	assert.True(t, composite.IsComposite())
}
