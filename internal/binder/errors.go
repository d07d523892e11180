package binder

import "fmt"

// UnresolvedReferenceError reports a deferred binding whose referenced entity
// does not exist in the entity graph. This is a user-facing mapping error.
type UnresolvedReferenceError struct {
	Entity string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unknown entity name: %s", e.Entity)
}

// InvariantError reports a structural assumption violated by an earlier
// binding stage. It signals a defect in the binder, not in user input, and is
// kept distinct from mapping errors so callers can tell the two apart.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "binder invariant violated: " + e.Message
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}

// ColumnCorrespondenceError reports an identifier-copy join column lookup that
// found no match. The message depends on the match mode: explicit references
// name the missing column, positional references name the entity and suggest
// switching to explicit references.
type ColumnCorrespondenceError struct {
	Explicit bool
	// Column is the missing logical column name (explicit mode).
	Column string
	// Entity is the referenced entity (positional mode).
	Entity string
}

func (e *ColumnCorrespondenceError) Error() string {
	if e.Explicit {
		return fmt.Sprintf("cannot find column reference in identifier copy: %s", e.Column)
	}
	return fmt.Sprintf("implicit column reference in identifier copy of %s failed, use explicit referenced column names", e.Entity)
}
