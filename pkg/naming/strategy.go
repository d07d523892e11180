package naming

import (
	"strings"
	"unicode"
)

// PhysicalNamingStrategy maps logical identifiers from mapping declarations to
// the physical identifiers used in storage. Implementations must be
// deterministic: the binder resolves each generated column exactly once.
type PhysicalNamingStrategy interface {
	ToPhysicalTableName(name Identifier, env *Environment) Identifier
	ToPhysicalColumnName(name Identifier, env *Environment) Identifier
}

// Identity is the default strategy: physical names equal logical names.
type Identity struct{}

// ToPhysicalTableName implements PhysicalNamingStrategy.
func (Identity) ToPhysicalTableName(name Identifier, _ *Environment) Identifier { return name }

// ToPhysicalColumnName implements PhysicalNamingStrategy.
func (Identity) ToPhysicalColumnName(name Identifier, _ *Environment) Identifier { return name }

// SnakeCase converts camelCase logical names to snake_case physical names.
// Quoted identifiers pass through unchanged.
type SnakeCase struct{}

// ToPhysicalTableName implements PhysicalNamingStrategy.
func (SnakeCase) ToPhysicalTableName(name Identifier, _ *Environment) Identifier {
	return snake(name)
}

// ToPhysicalColumnName implements PhysicalNamingStrategy.
func (SnakeCase) ToPhysicalColumnName(name Identifier, _ *Environment) Identifier {
	return snake(name)
}

func snake(name Identifier) Identifier {
	if name.Quoted {
		return name
	}
	return Identifier{Text: toSnakeCase(name.Text)}
}

// toSnakeCase lowercases text, inserting underscores at case boundaries.
// Consecutive capitals are treated as one word ("orderID" -> "order_id").
func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
