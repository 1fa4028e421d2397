package model

// Property is a scalar member of an entity type. Its column name has one
// base override plus optional per-store-object overrides, each with its own
// provenance: a property can map to differently named columns in the table
// and in a view of the same entity.
type Property struct {
	entity    *EntityType
	name      string
	column    *annotation
	overrides map[StoreObjectKind]*annotation
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// EntityType returns the declaring entity type.
func (p *Property) EntityType() *EntityType { return p.entity }

// DefaultColumnName returns the current unrewritten default column name for
// the given store object. Under table splitting non-key columns are
// namespaced with the owner's short name; primary-key columns stay bare
// because they are the row-link shared with the owner.
func (p *Property) DefaultColumnName(id StoreObjectIdentifier) string {
	if id.Kind == StoreKindTable && !p.IsPrimaryKeyProperty() {
		if fks := p.entity.RowInternalForeignKeys(id); len(fks) > 0 {
			return fks[0].PrincipalEntityType().Name() + "_" + p.name
		}
	}
	return p.name
}

// ColumnName resolves the column name for the given store object:
// per-object override, then base override, then the default.
func (p *Property) ColumnName(id StoreObjectIdentifier) string {
	if a := p.overrides[id.Kind]; a != nil {
		return a.value
	}
	if p.column != nil {
		return p.column.value
	}
	return p.DefaultColumnName(id)
}

// ColumnNameSource returns the provenance of the base column override.
func (p *Property) ColumnNameSource() (ConfigurationSource, bool) {
	if p.column == nil {
		return 0, false
	}
	return p.column.source, true
}

// ColumnNameSourceFor returns the provenance of the per-store-object
// override for the given kind.
func (p *Property) ColumnNameSourceFor(kind StoreObjectKind) (ConfigurationSource, bool) {
	a := p.overrides[kind]
	if a == nil {
		return 0, false
	}
	return a.source, true
}

// SetColumnName writes the base column override. Reports whether the write
// took effect (a convention cannot overwrite an explicit value).
func (p *Property) SetColumnName(value string, source ConfigurationSource) bool {
	next, ok := p.column.set(value, source)
	if ok {
		p.column = next
	}
	return ok
}

// RemoveColumnName clears the base column override, subject to provenance.
func (p *Property) RemoveColumnName(source ConfigurationSource) bool {
	if _, ok := p.column.remove(source); !ok {
		return false
	}
	p.column = nil
	return true
}

// CanSetColumnName reports whether a write from source would take effect.
func (p *Property) CanSetColumnName(source ConfigurationSource) bool {
	return p.column == nil || source.overrides(p.column.source)
}

// SetColumnNameFor writes the per-store-object override for the given kind.
func (p *Property) SetColumnNameFor(kind StoreObjectKind, value string, source ConfigurationSource) bool {
	if p.overrides == nil {
		p.overrides = make(map[StoreObjectKind]*annotation)
	}
	next, ok := p.overrides[kind].set(value, source)
	if ok {
		p.overrides[kind] = next
	}
	return ok
}

// RemoveColumnNameFor clears the per-store-object override for the given
// kind, subject to provenance.
func (p *Property) RemoveColumnNameFor(kind StoreObjectKind, source ConfigurationSource) bool {
	if _, ok := p.overrides[kind].remove(source); !ok {
		return false
	}
	delete(p.overrides, kind)
	return true
}

// IsPrimaryKeyProperty reports whether the property participates in the
// entity's primary key.
func (p *Property) IsPrimaryKeyProperty() bool {
	pk := p.entity.FindPrimaryKey()
	if pk == nil {
		return false
	}
	for _, kp := range pk.properties {
		if kp == p {
			return true
		}
	}
	return false
}
