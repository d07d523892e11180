package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MultiDocument(t *testing.T) {
	doc := `
entity: Customer
table: customers
id:
  composite:
    properties:
      - name: tenantId
        type: string
        columns:
          - name: tenant_id
---
entity: Order
table: orders
id:
  copy-of:
    entity: Customer
    join-columns:
      - name: cust_tenant_id
        references: tenant_id
`
	decls, err := Parse([]byte(doc), "multi.yaml")
	require.NoError(t, err)
	require.Len(t, decls, 2)

	assert.Equal(t, "Customer", decls[0].Entity)
	assert.Equal(t, "multi.yaml", decls[0].File)

	require.NotNil(t, decls[1].ID.CopyOf)
	assert.Equal(t, "Customer", decls[1].ID.CopyOf.Entity)
	require.Len(t, decls[1].ID.CopyOf.JoinColumns, 1)
	assert.Equal(t, "tenant_id", decls[1].ID.CopyOf.JoinColumns[0].References)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	doc := `
entity: Customer
table: customers
id:
  type: long
tabel: typo
`
	_, err := Parse([]byte(doc), "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestParse_MetaFieldsAllowed(t *testing.T) {
	doc := `
entity: Customer
table: customers
id:
  type: long
meta:
  owner: billing-team
`
	decls, err := Parse([]byte(doc), "meta.yaml")
	require.NoError(t, err)
	assert.Equal(t, "billing-team", decls[0].Meta["owner"])
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		errSubstr string
	}{
		{
			name:      "missing entity name",
			doc:       "table: t\nid:\n  type: long\n",
			errSubstr: "missing a name",
		},
		{
			name:      "missing table",
			doc:       "entity: E\nid:\n  type: long\n",
			errSubstr: "missing a table",
		},
		{
			name:      "missing identifier",
			doc:       "entity: E\ntable: t\n",
			errSubstr: "missing an identifier",
		},
		{
			name: "identifier without any shape",
			doc: `entity: E
table: t
id:
  name: id
`,
			errSubstr: "declares none of column, composite, copy-of",
		},
		{
			name: "identifier with two shapes",
			doc: `entity: E
table: t
id:
  column:
    name: c
  copy-of:
    entity: Other
`,
			errSubstr: "more than one of",
		},
		{
			name: "copy-of without entity",
			doc: `entity: E
table: t
id:
  copy-of:
    join-columns:
      - name: x
`,
			errSubstr: "missing the referenced entity",
		},
		{
			name: "composite without properties",
			doc: `entity: E
table: t
id:
  composite:
    struct: Key
`,
			errSubstr: "has no properties",
		},
		{
			name: "selectable with neither name nor formula",
			doc: `entity: E
table: t
id:
  type: long
properties:
  - name: p
    columns:
      - length: 10
`,
			errSubstr: "neither name nor formula",
		},
		{
			name: "selectable with both name and formula",
			doc: `entity: E
table: t
id:
  type: long
properties:
  - name: p
    columns:
      - name: c
        formula: upper(c)
`,
			errSubstr: "both name and formula",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "test.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "e.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entity: E\ntable: t\nid:\n  type: long\n"), 0o644))

	decls, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, path, decls[0].File)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read mapping file")
}
