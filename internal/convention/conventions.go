package convention

import (
	"log/slog"

	"schema-naming/internal/model"
	"schema-naming/internal/rewrite"
)

// DefaultConventions wires the standard convention pipeline for a model
// build: the shared-column disambiguator followed by the name rewriting
// engine. The registration order in the ModelFinalizing slot is a contract:
// NameRewriter's finalizing fixup assumes the disambiguation pass has
// already run.
func DefaultConventions(nr *NameRewriter, logger *slog.Logger) *model.ConventionSet {
	cs := &model.ConventionSet{}
	cs.Add(NewSharedColumnDisambiguator(logger))
	cs.Add(nr)
	return cs
}

// FromConfig builds the convention pipeline from the naming configuration.
func FromConfig(cfg rewrite.Config, logger *slog.Logger) (*model.ConventionSet, error) {
	names, err := cfg.ColumnRewriter()
	if err != nil {
		return nil, err
	}
	tables, err := cfg.TableRewriter()
	if err != nil {
		return nil, err
	}
	nr := NewNameRewriter(names, Options{
		TableRewriter: tables,
		Separator:     cfg.Separator,
		Logger:        logger,
	})
	return DefaultConventions(nr, logger), nil
}
