package binder

import (
	"fmt"

	"github.com/mapbind-labs/mapbind/internal/parser"
	"github.com/mapbind-labs/mapbind/pkg/mapping"
)

// Binder performs the primary pass: it turns parsed declarations into
// entities and registers second passes for bindings that need the full entity
// graph. Declarations may arrive in any order and reference entities bound
// later.
type Binder struct {
	ctx      *BuildContext
	metadata *Metadata
}

// New creates a binder with the given build context.
func New(ctx *BuildContext) *Binder {
	return &Binder{ctx: ctx, metadata: NewMetadata()}
}

// Metadata returns the metadata being built.
func (b *Binder) Metadata() *Metadata { return b.metadata }

// Bind runs the primary pass over all declarations. Deferred bindings are
// queued, not resolved; call Metadata().RunSecondPasses() afterwards.
func (b *Binder) Bind(decls []*parser.EntityDecl) error {
	for _, d := range decls {
		if err := b.bindEntity(d); err != nil {
			return fmt.Errorf("%s: %w", d.File, err)
		}
	}
	return nil
}

func (b *Binder) bindEntity(d *parser.EntityDecl) error {
	table := &mapping.Table{Schema: d.Schema, Name: d.Table}
	if table.Schema == "" && b.ctx.Dialect != nil {
		table.Schema = b.ctx.Dialect.DefaultSchema
	}
	e := &mapping.Entity{Name: d.Entity, Table: table}

	idName := d.ID.Name
	if idName == "" {
		idName = "id"
	}
	access := accessOrDefault(d.ID.Access)

	switch {
	case d.ID.CopyOf != nil:
		// The identifier mirrors another entity's identifier. Bind an
		// empty component now and defer population until the
		// referenced entity's identifier exists.
		comp := mapping.NewComponent(e)
		e.Identifier = comp
		e.IdentifierProperty = &mapping.Property{Name: idName, Access: access, Value: comp}

		joinColumns := make([]*JoinColumn, 0, len(d.ID.CopyOf.JoinColumns))
		for _, jd := range d.ID.CopyOf.JoinColumns {
			name := DeferredName()
			if jd.Name != "" {
				name = ExplicitName(jd.Name)
			}
			joinColumns = append(joinColumns, NewJoinColumn(name, jd.References))
		}
		if len(joinColumns) == 0 {
			// No join columns declared: defer everything.
			joinColumns = append(joinColumns, NewJoinColumn(DeferredName(), ""))
		}
		b.metadata.AddSecondPass(NewCopyIdentifierPass(comp, d.ID.CopyOf.Entity, joinColumns, b.ctx))

	case d.ID.Composite != nil:
		comp, err := b.bindComponent(e, d.ID.Composite.Struct, d.ID.Composite.Type, d.ID.Composite.Properties)
		if err != nil {
			return err
		}
		e.Identifier = comp
		e.IdentifierProperty = &mapping.Property{Name: idName, Access: access, Value: comp}

	default:
		value := mapping.NewBasicValue(table)
		value.TypeName = d.ID.Type
		if d.ID.Column != nil {
			value.AddColumn(&mapping.Column{
				Name:      d.ID.Column.Name,
				Length:    d.ID.Column.Length,
				Precision: d.ID.Column.Precision,
				Scale:     d.ID.Column.Scale,
			})
		}
		e.Identifier = value
		e.IdentifierProperty = &mapping.Property{Name: idName, Access: access, Value: value}
	}

	for _, pd := range d.Properties {
		prop, err := b.bindProperty(e, table, pd)
		if err != nil {
			return err
		}
		e.AddProperty(prop)
	}

	return b.metadata.AddEntity(e)
}

// bindComponent builds a composite value from declarations, recursing into
// nested composites.
func (b *Binder) bindComponent(owner *mapping.Entity, structName, typeName string, props []parser.PropertyDecl) (*mapping.Component, error) {
	comp := mapping.NewComponent(owner)
	comp.StructName = structName
	comp.TypeName = typeName
	for _, pd := range props {
		prop, err := b.bindProperty(owner, comp.Table(), pd)
		if err != nil {
			return nil, err
		}
		comp.AddProperty(prop)
	}
	return comp, nil
}

func (b *Binder) bindProperty(owner *mapping.Entity, table *mapping.Table, pd parser.PropertyDecl) (*mapping.Property, error) {
	access := accessOrDefault(pd.Access)

	if len(pd.Properties) > 0 {
		comp, err := b.bindComponent(owner, pd.Struct, pd.Type, pd.Properties)
		if err != nil {
			return nil, err
		}
		return &mapping.Property{Name: pd.Name, Access: access, Value: comp}, nil
	}

	value := mapping.NewBasicValue(table)
	value.TypeName = pd.Type
	if len(pd.TypeParams) > 0 {
		value.TypeParams = make(map[string]string, len(pd.TypeParams))
		for k, v := range pd.TypeParams {
			value.TypeParams[k] = v
		}
	}
	for _, sd := range pd.Columns {
		if sd.Formula != "" {
			value.AddFormula(&mapping.Formula{Expression: sd.Formula})
			continue
		}
		value.AddColumn(&mapping.Column{
			Name:      sd.Name,
			Length:    sd.Length,
			Precision: sd.Precision,
			Scale:     sd.Scale,
		})
	}
	return &mapping.Property{Name: pd.Name, Access: access, Value: value}, nil
}

func accessOrDefault(access string) string {
	if access == "" {
		return mapping.AccessField
	}
	return access
}
