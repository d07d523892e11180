package mapping

// Selectable is anything that can back a value: a physical Column or a
// computed Formula.
type Selectable interface {
	// IsFormula reports whether the selectable is a computed expression
	// rather than a physical column.
	IsFormula() bool
}

// Column is a physical table column. Name holds the resolved name as it will
// appear in the database; Quoted marks names that must keep their exact case.
type Column struct {
	Name      string
	Quoted    bool
	Length    int
	Precision int
	Scale     int

	// Value is the value this column addresses. A column copied into a
	// dependent identifier is annotated with the new value so that later
	// stages can join the two sides.
	Value Value
}

// IsFormula implements Selectable.
func (c *Column) IsFormula() bool { return false }

// Formula is a computed expression backing a value. Formulas cannot be
// referenced by foreign keys and are skipped when identifier structures are
// copied.
type Formula struct {
	Expression string
}

// IsFormula implements Selectable.
func (f *Formula) IsFormula() bool { return true }
