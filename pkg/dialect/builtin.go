package dialect

func init() {
	Register(ANSI)
	Register(Postgres)
	Register(MySQL)
	Register(Snowflake)
}

// commonReserved lists keywords every builtin dialect quotes when they appear
// as identifiers.
var commonReserved = []string{
	"SELECT", "FROM", "WHERE", "GROUP", "ORDER", "BY", "HAVING",
	"INSERT", "UPDATE", "DELETE", "TABLE", "INDEX", "PRIMARY", "KEY",
	"FOREIGN", "REFERENCES", "CONSTRAINT", "UNIQUE", "NOT", "NULL",
	"DEFAULT", "CHECK", "AND", "OR", "IN", "IS", "AS", "ON", "JOIN",
	"CREATE", "ALTER", "DROP", "GRANT", "USER", "CASE", "WHEN", "THEN",
	"ELSE", "END", "UNION", "ALL", "DISTINCT", "BETWEEN", "LIKE",
}

// ANSI is the base SQL standard dialect: double-quote quoting, lower-case
// normalization.
var ANSI = NewDialect("ansi").
	WithReservedWords(commonReserved...).
	Build()

// Postgres quotes with double quotes and folds unquoted identifiers to lower
// case.
var Postgres = NewDialect("postgres").
	DefaultSchema("public").
	WithReservedWords(commonReserved...).
	WithReservedWords("OFFSET", "LIMIT", "RETURNING", "ILIKE").
	Build()

// MySQL quotes with backticks and matches identifiers case-insensitively.
var MySQL = NewDialect("mysql").
	Identifiers("`", "`", "``", NormCaseInsensitive).
	WithReservedWords(commonReserved...).
	WithReservedWords("LIMIT", "OFFSET", "DATABASES", "SCHEMAS").
	Build()

// Snowflake folds unquoted identifiers to upper case.
var Snowflake = NewDialect("snowflake").
	Identifiers(`"`, `"`, `""`, NormUppercase).
	DefaultSchema("PUBLIC").
	WithReservedWords(commonReserved...).
	WithReservedWords("QUALIFY", "ILIKE", "MINUS").
	Build()
