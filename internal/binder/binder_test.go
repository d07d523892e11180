package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapbind-labs/mapbind/internal/parser"
	"github.com/mapbind-labs/mapbind/pkg/dialect"
	"github.com/mapbind-labs/mapbind/pkg/mapping"
)

func parseDecls(t *testing.T, doc string) []*parser.EntityDecl {
	t.Helper()
	decls, err := parser.Parse([]byte(doc), "test.yaml")
	require.NoError(t, err)
	return decls
}

func TestBinder_ScalarIdentifier(t *testing.T) {
	decls := parseDecls(t, `
entity: Product
table: products
id:
  type: long
  column:
    name: product_id
properties:
  - name: title
    type: string
    columns:
      - name: title
        length: 200
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))

	e, ok := b.Metadata().Entity("Product")
	require.True(t, ok)
	assert.Equal(t, "products", e.Table.Name)

	// Identifier defaults: name "id", field access.
	require.NotNil(t, e.IdentifierProperty)
	assert.Equal(t, "id", e.IdentifierProperty.Name)
	assert.Equal(t, mapping.AccessField, e.IdentifierProperty.Access)

	basic, ok := e.Identifier.(*mapping.BasicValue)
	require.True(t, ok)
	assert.Equal(t, "long", basic.TypeName)
	require.Len(t, basic.Columns(), 1)
	assert.Equal(t, "product_id", basic.Columns()[0].Name)

	require.Len(t, e.Properties(), 1)
	title := e.Properties()[0].Value.(*mapping.BasicValue)
	assert.Equal(t, 200, title.Columns()[0].Length)
}

func TestBinder_CompositeIdentifier(t *testing.T) {
	decls := parseDecls(t, `
entity: Customer
table: customers
id:
  name: key
  access: property
  composite:
    struct: CustomerKey
    properties:
      - name: tenantId
        type: string
        columns:
          - name: tenant_id
      - name: customerNo
        type: long
        columns:
          - name: customer_no
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))

	e, _ := b.Metadata().Entity("Customer")
	comp, ok := e.Identifier.(*mapping.Component)
	require.True(t, ok)
	assert.Equal(t, "CustomerKey", comp.StructName)
	assert.Equal(t, 2, comp.PropertySpan())
	assert.Equal(t, "key", e.IdentifierProperty.Name)
	assert.Equal(t, mapping.AccessProperty, e.IdentifierProperty.Access)
	assert.Same(t, e, comp.Owner())
}

func TestBinder_CopyOfQueuesSecondPass(t *testing.T) {
	decls := parseDecls(t, `
entity: Order
table: orders
id:
  copy-of:
    entity: Customer
    join-columns:
      - name: cust_tenant_id
        references: tenant_id
      - references: customer_no
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))

	md := b.Metadata()
	passes := md.SecondPasses()
	require.Len(t, passes, 1)

	pass, ok := passes[0].(*CopyIdentifierPass)
	require.True(t, ok)
	assert.Equal(t, "Customer", pass.ReferencedEntityName())
	assert.Equal(t, "Order", pass.DependentEntityName())

	// The identifier is an empty component until the pass resolves.
	e, _ := md.Entity("Order")
	comp, ok := e.Identifier.(*mapping.Component)
	require.True(t, ok)
	assert.Equal(t, 0, comp.PropertySpan())

	// A join column without a name is name-deferred.
	require.Len(t, pass.joinColumns, 2)
	assert.False(t, pass.joinColumns[0].ColumnName.Deferred())
	assert.True(t, pass.joinColumns[1].ColumnName.Deferred())
	assert.Equal(t, "customer_no", pass.joinColumns[1].ReferencedName)
}

func TestBinder_CopyOfWithoutJoinColumns(t *testing.T) {
	decls := parseDecls(t, `
entity: Order
table: orders
id:
  copy-of:
    entity: Customer
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))

	pass := b.Metadata().SecondPasses()[0].(*CopyIdentifierPass)
	require.Len(t, pass.joinColumns, 1)
	assert.True(t, pass.joinColumns[0].ColumnName.Deferred())
}

func TestBinder_SchemaDefaultsFromDialect(t *testing.T) {
	decls := parseDecls(t, `
entity: Product
table: products
id:
  type: long
`)

	postgres, ok := dialect.Get("postgres")
	require.True(t, ok)
	ctx := testCtx(t)
	ctx.Dialect = postgres

	b := New(ctx)
	require.NoError(t, b.Bind(decls))

	e, _ := b.Metadata().Entity("Product")
	assert.Equal(t, "public", e.Table.Schema)
	assert.Equal(t, "public.products", e.Table.QualifiedName())
}

func TestBinder_DeclaredSchemaWins(t *testing.T) {
	decls := parseDecls(t, `
entity: Product
table: products
schema: catalog
id:
  type: long
`)

	postgres, _ := dialect.Get("postgres")
	ctx := testCtx(t)
	ctx.Dialect = postgres

	b := New(ctx)
	require.NoError(t, b.Bind(decls))

	e, _ := b.Metadata().Entity("Product")
	assert.Equal(t, "catalog", e.Table.Schema)
}

func TestBinder_FormulaProperty(t *testing.T) {
	decls := parseDecls(t, `
entity: Product
table: products
id:
  type: long
properties:
  - name: slug
    type: string
    columns:
      - formula: lower(title)
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))

	e, _ := b.Metadata().Entity("Product")
	slug := e.Properties()[0].Value.(*mapping.BasicValue)
	require.Len(t, slug.Selectables(), 1)
	assert.True(t, slug.Selectables()[0].IsFormula())
}

// TestBinder_EndToEndOutOfOrder exercises the whole pipeline: the dependent
// entity is declared before the entity it references.
func TestBinder_EndToEndOutOfOrder(t *testing.T) {
	decls := parseDecls(t, `
entity: Order
table: orders
id:
  copy-of:
    entity: Customer
    join-columns:
      - name: cust_tenant_id
        references: tenant_id
      - name: cust_no
        references: customer_no
---
entity: Customer
table: customers
id:
  composite:
    properties:
      - name: tenantId
        type: string
        columns:
          - name: tenant_id
            length: 36
      - name: customerNo
        type: long
        columns:
          - name: customer_no
`)

	b := New(testCtx(t))
	require.NoError(t, b.Bind(decls))
	require.NoError(t, b.Metadata().RunSecondPasses())

	order, _ := b.Metadata().Entity("Order")
	comp := order.Identifier.(*mapping.Component)
	require.Equal(t, 2, comp.PropertySpan())

	tenant := comp.Properties()[0].Value.(*mapping.BasicValue)
	assert.Equal(t, "cust_tenant_id", tenant.Columns()[0].Name)
	assert.Equal(t, "string", tenant.TypeName)
}

func TestBinder_ErrorCarriesFile(t *testing.T) {
	decls := parseDecls(t, `
entity: Dup
table: dups
id:
  type: long
---
entity: Dup
table: dups
id:
  type: long
`)

	b := New(testCtx(t))
	err := b.Bind(decls)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.yaml")
	assert.Contains(t, err.Error(), "duplicate entity name")
}
