package convention

import (
	"log/slog"
	"strings"

	"schema-naming/internal/model"
	"schema-naming/internal/rewrite"
)

// NameRewriter keeps every convention-sourced name in the model consistent
// with the configured rewriters while the model mutates. Every handler
// follows the same discipline: clear the previous convention value,
// recompute the current unrewritten default, rewrite it, and write it back
// through the conditional setters. A rewritten value is never fed back into
// a rewriter, and explicit values are never touched.
//
// All handlers are idempotent: re-delivering an event yields the same final
// names.
type NameRewriter struct {
	names  rewrite.Rewriter
	tables rewrite.Rewriter
	sep    string
	logger *slog.Logger
}

// Options tunes a NameRewriter beyond the single name rewriter.
type Options struct {
	// TableRewriter is applied to table and view names instead of the name
	// rewriter, e.g. to pluralize tables. Defaults to the name rewriter.
	TableRewriter rewrite.Rewriter
	// Separator joins a rewritten short-name prefix with a column suffix
	// during the finalizing fixup. Defaults to "_".
	Separator string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewNameRewriter builds the engine around the given rewriter.
func NewNameRewriter(names rewrite.Rewriter, opts Options) *NameRewriter {
	tables := opts.TableRewriter
	if tables == nil {
		tables = names
	}
	sep := opts.Separator
	if sep == "" {
		sep = "_"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NameRewriter{names: names, tables: tables, sep: sep, logger: logger}
}

// ProcessEntityAdded assigns the rewritten table name to a hierarchy root or
// standalone entity. Hierarchy wiring is handled later by
// ProcessBaseTypeChanged.
func (nr *NameRewriter) ProcessEntityAdded(e *model.EntityType) {
	if e.BaseType() != nil {
		return
	}
	nr.rewriteTableName(e)
	if src, ok := e.AnnotationSource(model.AnnotationViewName); ok && src == model.SourceConvention {
		if viewName, _ := e.ViewName(); viewName != "" {
			e.SetAnnotation(model.AnnotationViewName, nr.tables.Rewrite(viewName), model.SourceConvention)
		}
	}
}

// ProcessBaseTypeChanged reassigns a convention table name when an entity
// leaves its hierarchy, and clears it when the entity joins one: a hierarchy
// member does not own table identity by convention.
func (nr *NameRewriter) ProcessBaseTypeChanged(e *model.EntityType, newBase, oldBase *model.EntityType) {
	if newBase == nil {
		nr.rewriteTableName(e)
		return
	}
	if src, ok := e.TableNameSource(); ok && src == model.SourceConvention {
		e.RemoveAnnotation(model.AnnotationTableName, model.SourceConvention)
		e.RemoveAnnotation(model.AnnotationSchema, model.SourceConvention)
		nr.logger.Debug("cleared convention table name on hierarchy join",
			slog.String("entity", e.Name()),
			slog.String("base", newBase.Name()),
		)
	}
}

// ProcessPropertyAdded computes and rewrites the property's column name for
// the primary store object and refreshes any convention-sourced per-object
// slots.
func (nr *NameRewriter) ProcessPropertyAdded(p *model.Property) {
	nr.rewriteColumnName(p)
}

// ProcessKeyAdded rewrites the new key's default constraint name.
func (nr *NameRewriter) ProcessKeyAdded(k *model.Key) {
	k.RemoveName(model.SourceConvention)
	if def := k.DefaultName(); def != "" {
		k.SetName(nr.names.Rewrite(def), model.SourceConvention)
	}
}

// ProcessForeignKeyAdded rewrites the new foreign key's default constraint
// name.
func (nr *NameRewriter) ProcessForeignKeyAdded(fk *model.ForeignKey) {
	fk.RemoveConstraintName(model.SourceConvention)
	if def := fk.DefaultConstraintName(); def != "" {
		fk.SetConstraintName(nr.names.Rewrite(def), model.SourceConvention)
	}
}

// ProcessIndexAdded rewrites the new index's default database name.
func (nr *NameRewriter) ProcessIndexAdded(ix *model.Index) {
	ix.RemoveDatabaseName(model.SourceConvention)
	if def := ix.DefaultDatabaseName(); def != "" {
		ix.SetDatabaseName(nr.names.Rewrite(def), model.SourceConvention)
	}
}

// ProcessForeignKeyOwnershipChanged reacts to a foreign key becoming an
// ownership edge. When the owned side enters table splitting, its table
// identity and primary-key name are cleared and every column is renamed into
// the owner's table namespace.
func (nr *NameRewriter) ProcessForeignKeyOwnershipChanged(fk *model.ForeignKey) {
	owned := fk.DeclaringEntityType()
	if Classify(owned) != OwnedSplitTable {
		return
	}

	owned.RemoveAnnotation(model.AnnotationTableName, model.SourceConvention)
	owned.RemoveAnnotation(model.AnnotationSchema, model.SourceConvention)
	if pk := owned.FindPrimaryKey(); pk != nil {
		pk.RemoveName(model.SourceConvention)
	}
	for _, p := range owned.Properties() {
		nr.rewriteColumnName(p)
	}
	nr.logger.Debug("table splitting established",
		slog.String("owned", owned.Name()),
		slog.String("owner", fk.PrincipalEntityType().Name()),
	)
}

// ProcessEntityAnnotationChanged reacts to a store-object name annotation
// change. Setting a view, function or query name clears a convention table
// name; a table-name change re-derives every name whose default embeds the
// table name.
func (nr *NameRewriter) ProcessEntityAnnotationChanged(e *model.EntityType, kind model.AnnotationKind, newValue, oldValue string) {
	switch kind {
	case model.AnnotationViewName, model.AnnotationFunctionName, model.AnnotationSQLQuery:
		if newValue == "" {
			return
		}
		if src, ok := e.TableNameSource(); ok && src == model.SourceConvention {
			e.RemoveAnnotation(model.AnnotationTableName, model.SourceConvention)
			nr.logger.Debug("cleared convention table name on alternate store object mapping",
				slog.String("entity", e.Name()),
				slog.String("store_object", kind.String()),
			)
		}
	case model.AnnotationSchema, model.AnnotationViewSchema:
		// Schemas are carried verbatim; nothing derives from them.
	case model.AnnotationTableName:
		nr.processTableNameChanged(e, newValue)
	}
}

func (nr *NameRewriter) processTableNameChanged(e *model.EntityType, newValue string) {
	tableID, ok := e.StoreObject(model.StoreKindTable)
	if !ok {
		return
	}

	if pk := e.FindPrimaryKey(); pk != nil {
		rowInternal := len(e.RowInternalForeignKeys(tableID)) > 0
		if !rowInternal && Classify(e) != TPT {
			nr.rewriteKeyName(pk)
		} else {
			// TPT and table sharing: one key annotation would name the
			// constraint identically across distinct tables. Clear the
			// overrides and let each table resolve its own default.
			for _, t := range e.RootType().DerivedTypesInclusive() {
				if k := t.FindPrimaryKey(); k != nil {
					k.RemoveName(model.SourceConvention)
				}
			}
			nr.logger.Debug("cleared primary key names across hierarchy",
				slog.String("entity", e.Name()),
				slog.String("root", e.RootType().Name()),
			)
		}
	}

	// FK constraint and index defaults embed the table name.
	for _, fk := range e.ForeignKeys() {
		fk.RemoveConstraintName(model.SourceConvention)
		if def := fk.DefaultConstraintName(); def != "" {
			fk.SetConstraintName(nr.names.Rewrite(def), model.SourceConvention)
		}
	}
	for _, ix := range e.Indexes() {
		ix.RemoveDatabaseName(model.SourceConvention)
		if def := ix.DefaultDatabaseName(); def != "" {
			ix.SetDatabaseName(nr.names.Rewrite(def), model.SourceConvention)
		}
	}

	if newValue == "" {
		return
	}
	ownership := e.FindOwnership()
	if ownership == nil {
		return
	}
	ownerTable, _ := ownership.PrincipalEntityType().TableName()
	if newValue == ownerTable {
		return
	}

	// An owned entity acquired a table different from its owner's: table
	// splitting is being undone. Strip the splitting-induced column prefixes
	// and restore the primary key's own name.
	for _, p := range e.Properties() {
		if p.IsPrimaryKeyProperty() {
			continue
		}
		if !p.CanSetColumnName(model.SourceConvention) {
			continue
		}
		nr.rewriteColumnName(p)
	}
	if pk := e.FindPrimaryKey(); pk != nil {
		nr.rewriteKeyName(pk)
	}
	nr.logger.Debug("table splitting undone",
		slog.String("entity", e.Name()),
		slog.String("table", newValue),
	)
}

// ProcessModelFinalizing repairs column names that a shared-table
// disambiguation pass prefixed with the raw entity short name: the prefix is
// replaced with its rewritten form, the suffix kept verbatim.
//
// Precondition: every convention that prefixes column names (see
// SharedColumnDisambiguator) must be registered before this one in the
// ModelFinalizing slot. DefaultConventions enforces that order.
func (nr *NameRewriter) ProcessModelFinalizing(m *model.Model) {
	for _, e := range m.EntityTypes() {
		rawPrefix := e.Name() + "_"
		fixedPrefix := nr.names.Rewrite(e.Name()) + nr.sep
		for _, kind := range model.StoreObjectKinds {
			id, ok := e.StoreObject(kind)
			if !ok {
				continue
			}
			for _, p := range e.Properties() {
				if src, ok := p.ColumnNameSourceFor(kind); ok && src == model.SourceConvention {
					if name := p.ColumnName(id); strings.HasPrefix(name, rawPrefix) {
						p.SetColumnNameFor(kind, fixedPrefix+strings.TrimPrefix(name, rawPrefix), model.SourceConvention)
					}
					continue
				}
				if src, ok := p.ColumnNameSource(); ok && src == model.SourceConvention {
					if name := p.ColumnName(id); strings.HasPrefix(name, rawPrefix) {
						p.SetColumnName(fixedPrefix+strings.TrimPrefix(name, rawPrefix), model.SourceConvention)
					}
				}
			}
		}
	}
}

// rewriteTableName clears and recomputes the entity's convention table name
// from the current default. Explicit names are left alone entirely, and an
// entity whose mapping mode grants it no table identity of its own gets the
// annotation cleared, not rewritten.
func (nr *NameRewriter) rewriteTableName(e *model.EntityType) {
	if src, ok := e.TableNameSource(); ok && src == model.SourceExplicit {
		return
	}
	e.RemoveAnnotation(model.AnnotationTableName, model.SourceConvention)
	switch Classify(e) {
	case MappedToStoreObject, OwnedSplitTable, TPHDerived:
		return
	}
	if name := e.DefaultTableName(); name != "" {
		e.SetAnnotation(model.AnnotationTableName, nr.tables.Rewrite(name), model.SourceConvention)
	}
}

// rewriteKeyName clears and recomputes a key's convention constraint name
// from the current default.
func (nr *NameRewriter) rewriteKeyName(k *model.Key) {
	k.RemoveName(model.SourceConvention)
	if def := k.DefaultName(); def != "" {
		k.SetName(nr.names.Rewrite(def), model.SourceConvention)
	}
}

// rewriteColumnName clears the property's convention column name, recomputes
// the default against the current primary store object (falling back to the
// bare property name), rewrites it, and refreshes any convention-sourced
// per-store-object slots.
func (nr *NameRewriter) rewriteColumnName(p *model.Property) {
	e := p.EntityType()
	p.RemoveColumnName(model.SourceConvention)

	base := p.Name()
	if id, ok := e.StoreObject(model.StoreKindTable); ok {
		base = p.DefaultColumnName(id)
	}
	if base != "" && p.CanSetColumnName(model.SourceConvention) {
		p.SetColumnName(nr.names.Rewrite(base), model.SourceConvention)
	}

	for _, kind := range model.StoreObjectKinds {
		id, ok := e.StoreObject(kind)
		if !ok {
			continue
		}
		if src, ok := p.ColumnNameSourceFor(kind); ok && src == model.SourceConvention {
			p.SetColumnNameFor(kind, nr.names.Rewrite(p.DefaultColumnName(id)), model.SourceConvention)
		}
	}
}
