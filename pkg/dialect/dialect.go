// Package dialect provides database dialect configuration for identifier
// handling: quoting characters, name normalization, and reserved words.
//
// This package contains the public contract consumed by the naming layer and
// the binder. Concrete dialects are registered from builtin.go; additional
// dialects can be registered by callers at startup.
package dialect

import "strings"

// NormalizationStrategy describes how a dialect treats unquoted identifiers.
type NormalizationStrategy int

const (
	// NormCaseSensitive keeps identifiers exactly as written.
	NormCaseSensitive NormalizationStrategy = iota
	// NormLowercase folds unquoted identifiers to lower case (Postgres).
	NormLowercase
	// NormUppercase folds unquoted identifiers to upper case (Snowflake).
	NormUppercase
	// NormCaseInsensitive stores lower case but matches any case.
	NormCaseInsensitive
)

// ParseNormalization maps a configuration string to a strategy.
func ParseNormalization(s string) (NormalizationStrategy, bool) {
	switch strings.ToLower(s) {
	case "case_sensitive", "exact":
		return NormCaseSensitive, true
	case "lowercase":
		return NormLowercase, true
	case "uppercase":
		return NormUppercase, true
	case "case_insensitive":
		return NormCaseInsensitive, true
	}
	return NormCaseSensitive, false
}

// IdentifierConfig holds a dialect's identifier quoting and normalization
// rules.
type IdentifierConfig struct {
	Quote         string
	QuoteEnd      string
	Escape        string
	Normalization NormalizationStrategy
}

// Dialect represents a database dialect's identifier configuration.
type Dialect struct {
	Name          string
	Identifiers   IdentifierConfig
	DefaultSchema string

	reservedWords map[string]struct{}
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default:
		return name
	}
}

// IsReservedWord returns true if the word needs quoting when used as an
// identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[d.NormalizeName(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
// Quote end characters inside the name are escaped.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name. Identifier
// defaults follow the SQL standard: double-quote quoting, lower-case
// normalization.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// WithReservedWords registers words that need quoting when used as
// identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
