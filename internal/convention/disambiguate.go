package convention

import (
	"log/slog"

	"schema-naming/internal/model"
)

// SharedColumnDisambiguator resolves column-name collisions between entity
// types mapped to the same table (TPH hierarchies and table splitting) by
// prefixing each colliding column with its entity's raw short name.
//
// The prefix is deliberately the unrewritten short name: this pass knows
// nothing about the active naming convention. NameRewriter's finalizing
// handler rewrites the prefix afterwards, which is why this convention must
// be registered before NameRewriter in the ModelFinalizing slot.
type SharedColumnDisambiguator struct {
	logger *slog.Logger
}

// NewSharedColumnDisambiguator returns the disambiguation pass.
func NewSharedColumnDisambiguator(logger *slog.Logger) *SharedColumnDisambiguator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SharedColumnDisambiguator{logger: logger}
}

type tableKey struct {
	name   string
	schema string
}

// ProcessModelFinalizing scans every table mapped by more than one entity
// type and namespaces colliding non-key columns with the declaring entity's
// short name. Primary-key columns are left alone: sharing those is what
// links the rows.
func (d *SharedColumnDisambiguator) ProcessModelFinalizing(m *model.Model) {
	byTable := make(map[tableKey][]*model.EntityType)
	for _, e := range m.EntityTypes() {
		id, ok := e.StoreObject(model.StoreKindTable)
		if !ok {
			continue
		}
		key := tableKey{name: id.Name, schema: id.Schema}
		byTable[key] = append(byTable[key], e)
	}

	for key, entities := range byTable {
		if len(entities) < 2 {
			continue
		}
		d.disambiguateTable(key, entities)
	}
}

func (d *SharedColumnDisambiguator) disambiguateTable(key tableKey, entities []*model.EntityType) {
	id := model.StoreObjectIdentifier{Kind: model.StoreKindTable, Name: key.name, Schema: key.schema}

	type columnUse struct {
		entities map[*model.EntityType]struct{}
		props    []*model.Property
	}
	uses := make(map[string]*columnUse)
	for _, e := range entities {
		for _, p := range e.Properties() {
			if p.IsPrimaryKeyProperty() {
				continue
			}
			name := p.ColumnName(id)
			use := uses[name]
			if use == nil {
				use = &columnUse{entities: make(map[*model.EntityType]struct{})}
				uses[name] = use
			}
			use.entities[p.EntityType()] = struct{}{}
			use.props = append(use.props, p)
		}
	}

	for name, use := range uses {
		if len(use.entities) < 2 {
			continue
		}
		for _, p := range use.props {
			if !p.CanSetColumnName(model.SourceConvention) {
				continue
			}
			prefixed := p.EntityType().Name() + "_" + name
			p.SetColumnName(prefixed, model.SourceConvention)
			d.logger.Debug("disambiguated shared-table column",
				slog.String("table", key.name),
				slog.String("entity", p.EntityType().Name()),
				slog.String("column", name),
				slog.String("renamed", prefixed),
			)
		}
	}
}
