package binder

import (
	"strconv"
	"strings"

	"github.com/mapbind-labs/mapbind/pkg/mapping"
	"github.com/mapbind-labs/mapbind/pkg/naming"
)

// CopyIdentifierPass mirrors a referenced entity's composite identifier into
// a dependent component. It must run after the primary bind: the referenced
// identifier's property tree has to be fully built before it can be copied.
type CopyIdentifierPass struct {
	component            *mapping.Component
	referencedEntityName string
	joinColumns          []*JoinColumn
	ctx                  *BuildContext
}

// NewCopyIdentifierPass creates the pass. The join column list must be
// non-empty; its first element decides whether naming is wholly deferred and
// receives size metadata propagation.
func NewCopyIdentifierPass(component *mapping.Component, referencedEntityName string, joinColumns []*JoinColumn, ctx *BuildContext) *CopyIdentifierPass {
	return &CopyIdentifierPass{
		component:            component,
		referencedEntityName: referencedEntityName,
		joinColumns:          joinColumns,
		ctx:                  ctx,
	}
}

// ReferencedEntityName implements SecondPass.
func (p *CopyIdentifierPass) ReferencedEntityName() string {
	return p.referencedEntityName
}

// DependentEntityName names the entity whose identifier is being completed.
func (p *CopyIdentifierPass) DependentEntityName() string {
	if owner := p.component.Owner(); owner != nil {
		return owner.Name
	}
	return ""
}

// Resolve implements SecondPass. It walks the referenced identifier's
// property tree in declaration order and appends mirrored properties to the
// dependent component.
func (p *CopyIdentifierPass) Resolve(entities map[string]*mapping.Entity) error {
	referenced, ok := entities[p.referencedEntityName]
	if !ok {
		return &UnresolvedReferenceError{Entity: p.referencedEntityName}
	}
	refComponent, ok := referenced.Identifier.(*mapping.Component)
	if !ok {
		return invariantf("identifier of referenced entity %s is not composite", p.referencedEntityName)
	}
	if len(p.joinColumns) == 0 {
		return invariantf("identifier copy for entity %s has no join columns", p.referencedEntityName)
	}

	corr := p.buildCorrespondence()

	// One counter for the whole walk: positional numbering stays
	// continuous across nested composite boundaries.
	pos := &position{}
	for _, refProp := range refComponent.Properties() {
		prop, err := p.createProperty(referenced, corr, pos, refProp)
		if err != nil {
			return err
		}
		p.component.AddProperty(prop)
	}
	return nil
}

// correspondence maps referenced-column keys to join columns. Explicit mode
// keys by lower-cased referenced column name, positional mode by column
// order.
type correspondence struct {
	explicit bool
	byKey    map[string]*JoinColumn
}

func (c *correspondence) lookupExplicit(logicalName string) *JoinColumn {
	return c.byKey[strings.ToLower(logicalName)]
}

func (c *correspondence) lookupPositional(index int) *JoinColumn {
	return c.byKey[strconv.Itoa(index)]
}

// buildCorrespondence scans the join columns in declaration order. The set is
// explicit iff at least one spec carries a referenced column name; the scan
// stops at the first spec without one, since mixing explicit and implicit
// references in one set is unsupported. Referenced column names match
// case-insensitively.
func (p *CopyIdentifierPass) buildCorrespondence() *correspondence {
	byKey := make(map[string]*JoinColumn, len(p.joinColumns))
	for _, jc := range p.joinColumns {
		if jc.ReferencedName == "" {
			break
		}
		byKey[strings.ToLower(jc.ReferencedName)] = jc
	}
	if len(byKey) > 0 {
		return &correspondence{explicit: true, byKey: byKey}
	}
	for i, jc := range p.joinColumns {
		byKey[strconv.Itoa(i)] = jc
	}
	return &correspondence{byKey: byKey}
}

// position is the shared positional counter threaded through the recursive
// tree walk. It advances only in positional mode and is never reset per
// nesting level.
type position struct {
	n int
}

func (p *position) next() int {
	v := p.n
	p.n++
	return v
}

func (p *CopyIdentifierPass) createProperty(referenced *mapping.Entity, corr *correspondence, pos *position, refProp *mapping.Property) (*mapping.Property, error) {
	if refProp.IsComposite() {
		return p.createComponentProperty(referenced, corr, pos, refProp)
	}
	return p.createBasicProperty(referenced, corr, pos, refProp)
}

// createComponentProperty mirrors a nested composite sub-property: a new
// component cloning the referenced component's type metadata, recursing into
// its sub-properties with the same correspondence map and counter.
func (p *CopyIdentifierPass) createComponentProperty(referenced *mapping.Entity, corr *correspondence, pos *position, refProp *mapping.Property) (*mapping.Property, error) {
	refValue, ok := refProp.Value.(*mapping.Component)
	if !ok {
		return nil, invariantf("composite property %s of entity %s has a non-component value", refProp.Name, referenced.Name)
	}

	value := mapping.NewComponent(p.component.Owner())
	value.CloneTypeFrom(refValue)

	for _, sub := range refValue.Properties() {
		subProp, err := p.createProperty(referenced, corr, pos, sub)
		if err != nil {
			return nil, err
		}
		value.AddProperty(subProp)
	}

	return &mapping.Property{
		Name:   refProp.Name,
		Access: refProp.Access,
		Value:  value,
	}, nil
}

// createBasicProperty mirrors a scalar sub-property and resolves its columns.
func (p *CopyIdentifierPass) createBasicProperty(referenced *mapping.Entity, corr *correspondence, pos *position, refProp *mapping.Property) (*mapping.Property, error) {
	refValue, ok := refProp.Value.(*mapping.BasicValue)
	if !ok {
		return nil, invariantf("scalar property %s of entity %s has a non-basic value", refProp.Name, referenced.Name)
	}

	value := mapping.NewBasicValue(p.component.Table())
	value.CopyTypeFrom(refValue)
	prop := &mapping.Property{
		Name:   refProp.Name,
		Access: refProp.Access,
		Value:  value,
	}

	if p.joinColumns[0].ColumnName.Deferred() {
		// No column names were declared at all: the join column set
		// copies the referenced structure and defaults every name.
		p.joinColumns[0].copyReferencedStructure(referenced, refValue, value, p.ctx)
		return prop, nil
	}

	for _, sel := range refValue.Selectables() {
		col, ok := sel.(*mapping.Column)
		if !ok {
			// A foreign key cannot reference a computed expression.
			p.ctx.logger().Debug("skipping formula in identifier copy",
				"entity", referenced.Name, "property", refProp.Name)
			continue
		}

		var jc *JoinColumn
		var logicalName string
		if corr.explicit {
			logicalName = col.Name
			jc = corr.lookupExplicit(logicalName)
		} else {
			jc = corr.lookupPositional(pos.next())
		}
		if jc == nil {
			if corr.explicit {
				return nil, &ColumnCorrespondenceError{Explicit: true, Column: logicalName}
			}
			return nil, &ColumnCorrespondenceError{Entity: p.referencedEntityName}
		}

		columnName := jc.ColumnName.Name()
		if jc.ColumnName.Deferred() {
			// The join side deferred this one column's name even
			// though the copy itself is not deferred.
			columnName = defaultJoinColumnName(p.referencedEntityName, col.Name)
		}

		physical := p.ctx.Naming.ToPhysicalColumnName(naming.ToIdentifier(columnName), p.ctx.namingEnv())
		value.AddColumn(&mapping.Column{Name: physical.Render(p.ctx.Dialect)})

		jc.applySizeFrom(col)
		jc.LinkValue(value)
		// The referenced column now also addresses the copied value;
		// physical key emission later joins the two sides through it.
		col.Value = value
	}
	return prop, nil
}
