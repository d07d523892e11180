// Package parser parses YAML entity mapping files into declaration trees
// consumed by the binder. Unknown fields are parse errors.
package parser

// EntityDecl is one entity declaration from a mapping file.
type EntityDecl struct {
	Entity     string         `yaml:"entity"`
	Table      string         `yaml:"table"`
	Schema     string         `yaml:"schema"`
	ID         *IdentDecl     `yaml:"id"`
	Properties []PropertyDecl `yaml:"properties"`
	Meta       map[string]any `yaml:"meta"` // Extension point for custom fields

	// File is the mapping file the declaration came from, for error context.
	File string `yaml:"-"`
}

// IdentDecl declares an entity's identifier. Exactly one of Column (scalar),
// Composite, or CopyOf must be set.
type IdentDecl struct {
	Name      string          `yaml:"name"`
	Access    string          `yaml:"access"`
	Type      string          `yaml:"type"`
	Column    *ColumnDecl     `yaml:"column"`
	Composite *CompositeDecl  `yaml:"composite"`
	CopyOf    *CopyOfDecl     `yaml:"copy-of"`
}

// CompositeDecl declares a composite identifier or embedded component.
type CompositeDecl struct {
	Struct     string         `yaml:"struct"`
	Type       string         `yaml:"type"`
	Properties []PropertyDecl `yaml:"properties"`
}

// CopyOfDecl declares an identifier copied from another entity's identifier
// across a foreign key. Resolution is deferred until the referenced entity's
// identifier is fully built.
type CopyOfDecl struct {
	Entity      string           `yaml:"entity"`
	JoinColumns []JoinColumnDecl `yaml:"join-columns"`
}

// JoinColumnDecl declares one physical join column on the dependent side.
// An empty Name defers the column name to the binder; References optionally
// names the referenced identifier column (matched case-insensitively).
type JoinColumnDecl struct {
	Name       string `yaml:"name"`
	References string `yaml:"references"`
}

// PropertyDecl declares a property of an entity or component. Nested
// Properties make the property an embedded composite.
type PropertyDecl struct {
	Name       string            `yaml:"name"`
	Access     string            `yaml:"access"`
	Type       string            `yaml:"type"`
	TypeParams map[string]string `yaml:"type-params"`
	Struct     string            `yaml:"struct"`
	Columns    []SelectableDecl  `yaml:"columns"`
	Properties []PropertyDecl    `yaml:"properties"`
}

// SelectableDecl declares a column or a formula backing a property. Exactly
// one of Name or Formula must be set.
type SelectableDecl struct {
	Name      string `yaml:"name"`
	Formula   string `yaml:"formula"`
	Length    int    `yaml:"length"`
	Precision int    `yaml:"precision"`
	Scale     int    `yaml:"scale"`
}

// ColumnDecl declares the single column of a scalar identifier.
type ColumnDecl struct {
	Name      string `yaml:"name"`
	Length    int    `yaml:"length"`
	Precision int    `yaml:"precision"`
	Scale     int    `yaml:"scale"`
}
