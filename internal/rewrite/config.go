package rewrite

// Config holds naming customization options.
type Config struct {
	// Convention selects the rewriter: snake_case, lower_case,
	// upper_snake_case, camel_case or none.
	Convention string `mapstructure:"convention"`

	// Separator joins a prefix with a name when columns are namespaced
	// inside a shared table. Defaults to "_".
	Separator string `mapstructure:"separator"`

	// PluralizeTableNames pluralizes rewritten table names.
	PluralizeTableNames bool `mapstructure:"pluralize_table_names"`

	// PluralOverrides maps a rewritten name to a custom plural.
	// Example: {"person": "people", "status": "statuses"}
	PluralOverrides map[string]string `mapstructure:"plural_overrides"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Convention:      ConventionSnakeCase,
		Separator:       "_",
		PluralOverrides: make(map[string]string),
	}
}

// TableRewriter builds the rewriter used for table names: the configured
// convention, optionally wrapped with pluralization.
func (c Config) TableRewriter() (Rewriter, error) {
	rw, err := ForConvention(c.Convention)
	if err != nil {
		return nil, err
	}
	if c.PluralizeTableNames {
		return NewPluralizer(rw, c.PluralOverrides), nil
	}
	return rw, nil
}

// ColumnRewriter builds the rewriter used for everything that is not a table
// name (columns, keys, constraints, indexes).
func (c Config) ColumnRewriter() (Rewriter, error) {
	return ForConvention(c.Convention)
}
