// Package convention contains the naming conventions applied while the
// schema model is built: the name rewriting engine that keeps every derived
// identifier consistent with the configured convention, and the shared-table
// column disambiguator it depends on at finalization.
package convention

import (
	"schema-naming/internal/model"
)

// MappingMode classifies an entity type's current position in the model:
// which physical object its names belong to and therefore which of its names
// are eligible for (re)computation. The classification is a pure function of
// current model state and is recomputed on every use; a table-name change on
// any hierarchy member can flip the verdict for the whole hierarchy.
type MappingMode int

const (
	// StandaloneTable maps to its own table, no hierarchy, no ownership.
	StandaloneTable MappingMode = iota
	// TPHRoot is a hierarchy root whose derived types share its table.
	TPHRoot
	// TPHDerived shares the root's table and carries no table identity of
	// its own.
	TPHDerived
	// TPT is a member of a hierarchy where at least one type maps to a
	// table of its own.
	TPT
	// OwnedSplitTable is owned through a non-collection edge with no
	// explicit table: its columns live inside the owner's table.
	OwnedSplitTable
	// OwnedSeparateTable is owned but keeps a table of its own (collection
	// ownership or explicit table name).
	OwnedSeparateTable
	// MappedToStoreObject maps to a view, function or SQL query instead of
	// a table.
	MappedToStoreObject
)

// String implements fmt.Stringer.
func (m MappingMode) String() string {
	switch m {
	case StandaloneTable:
		return "standalone_table"
	case TPHRoot:
		return "tph_root"
	case TPHDerived:
		return "tph_derived"
	case TPT:
		return "tpt"
	case OwnedSplitTable:
		return "owned_split_table"
	case OwnedSeparateTable:
		return "owned_separate_table"
	case MappedToStoreObject:
		return "mapped_to_store_object"
	default:
		return "unknown"
	}
}

// Classify returns the entity's current mapping mode. Rules, in priority
// order: an alternate store object mapping without an explicit table wins;
// then hierarchy membership (TPT when any type's table differs from the
// root's, TPH otherwise); then ownership; then standalone.
func Classify(e *model.EntityType) MappingMode {
	explicitTable := false
	if src, ok := e.TableNameSource(); ok && src == model.SourceExplicit {
		explicitTable = true
	}

	if hasAlternateStoreObject(e) && !explicitTable {
		return MappedToStoreObject
	}

	if e.BaseType() != nil {
		if hierarchyIsTPT(e.RootType()) {
			return TPT
		}
		return TPHDerived
	}
	if len(e.DerivedTypes()) > 0 {
		if hierarchyIsTPT(e) {
			return TPT
		}
		return TPHRoot
	}

	if fk := e.FindOwnership(); fk != nil {
		if !fk.PrincipalIsCollection() && !explicitTable {
			return OwnedSplitTable
		}
		return OwnedSeparateTable
	}

	return StandaloneTable
}

func hasAlternateStoreObject(e *model.EntityType) bool {
	if _, ok := e.ViewName(); ok {
		return true
	}
	if _, ok := e.FunctionName(); ok {
		return true
	}
	if _, ok := e.SQLQuery(); ok {
		return true
	}
	return false
}

// hierarchyIsTPT reports whether any type in the root's hierarchy maps to a
// table different from the root's.
func hierarchyIsTPT(root *model.EntityType) bool {
	rootTable, _ := root.TableName()
	for _, t := range root.DerivedTypesInclusive() {
		if t == root {
			continue
		}
		if table, _ := t.TableName(); table != rootTable {
			return true
		}
	}
	return false
}
