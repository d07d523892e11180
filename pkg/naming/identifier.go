// Package naming provides logical-to-physical identifier resolution.
//
// Logical names come from mapping declarations; a PhysicalNamingStrategy maps
// them to the names actually used in storage, and the dialect renders the
// result (quoting where required). Strategies are registered by name so
// configuration can select one; see registry.go.
package naming

import (
	"strings"

	"github.com/mapbind-labs/mapbind/pkg/dialect"
)

// Identifier is a logical or physical name plus whether it must be quoted to
// preserve its exact text.
type Identifier struct {
	Text   string
	Quoted bool
}

// ToIdentifier interprets raw declaration text as an identifier. Text wrapped
// in backticks or double quotes is unwrapped and marked quoted.
func ToIdentifier(text string) Identifier {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '`' && last == '`') || (first == '"' && last == '"') {
			return Identifier{Text: text[1 : len(text)-1], Quoted: true}
		}
	}
	return Identifier{Text: text}
}

// IsEmpty reports whether the identifier carries no text.
func (i Identifier) IsEmpty() bool { return i.Text == "" }

// Canonical returns the form used for case-insensitive comparison: quoted
// identifiers keep their text, unquoted ones fold to lower case.
func (i Identifier) Canonical() string {
	if i.Quoted {
		return i.Text
	}
	return strings.ToLower(i.Text)
}

// Render produces the string form of the identifier for the given dialect:
// quoted identifiers (and reserved words) are wrapped in the dialect's quote
// characters, unquoted ones are normalized.
func (i Identifier) Render(d *dialect.Dialect) string {
	if i.Quoted || d.IsReservedWord(i.Text) {
		return d.QuoteIdentifier(i.Text)
	}
	return d.NormalizeName(i.Text)
}

// Environment carries the database context consulted during physical naming.
type Environment struct {
	Dialect *dialect.Dialect
}
