package config

// Default configuration values.
const (
	DefaultMappingsDir    = "mappings"
	DefaultOutput         = "table"
	DefaultDialect        = "ansi"
	DefaultNamingStrategy = "identity"
)
