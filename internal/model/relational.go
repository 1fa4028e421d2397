package model

import "strings"

// Key is a uniqueness constraint over a set of properties, optionally the
// primary key. Derived types in a hierarchy share the root's primary key.
type Key struct {
	entity     *EntityType
	properties []*Property
	primary    bool
	name       *annotation
}

// EntityType returns the declaring entity type.
func (k *Key) EntityType() *EntityType { return k.entity }

// Properties returns the key's properties in declaration order.
func (k *Key) Properties() []*Property { return k.properties }

// IsPrimary reports whether this is the declaring entity's primary key.
func (k *Key) IsPrimary() bool { return k.primary }

// DefaultName returns the current unrewritten default constraint name,
// derived from the declaring entity's resolved table name: "PK_{table}" for
// primary keys, "AK_{table}_{columns}" for alternate keys. Empty when the
// entity maps to no table.
func (k *Key) DefaultName() string {
	table, ok := k.entity.TableName()
	if !ok || table == "" {
		return ""
	}
	if k.primary {
		return "PK_" + table
	}
	return "AK_" + table + "_" + joinPropertyNames(k.properties)
}

// DefaultNameFor is DefaultName computed against a specific table
// identifier, used when hierarchy members resolve the shared key's name per
// physical table.
func (k *Key) DefaultNameFor(id StoreObjectIdentifier) string {
	if id.Kind != StoreKindTable || id.Name == "" {
		return ""
	}
	if k.primary {
		return "PK_" + id.Name
	}
	return "AK_" + id.Name + "_" + joinPropertyNames(k.properties)
}

// Name resolves the constraint name for the given table identifier:
// the override if set, the per-table default otherwise.
func (k *Key) Name(id StoreObjectIdentifier) string {
	if k.name != nil {
		return k.name.value
	}
	return k.DefaultNameFor(id)
}

// NameSource returns the provenance of the name override.
func (k *Key) NameSource() (ConfigurationSource, bool) {
	if k.name == nil {
		return 0, false
	}
	return k.name.source, true
}

// SetName writes the constraint name override, subject to provenance.
func (k *Key) SetName(value string, source ConfigurationSource) bool {
	next, ok := k.name.set(value, source)
	if ok {
		k.name = next
	}
	return ok
}

// RemoveName clears the constraint name override, subject to provenance.
func (k *Key) RemoveName(source ConfigurationSource) bool {
	if _, ok := k.name.remove(source); !ok {
		return false
	}
	k.name = nil
	return true
}

// ForeignKey relates a declaring (dependent) entity type to a principal.
// An ownership edge binds the dependent's lifetime to the principal; a
// non-collection ownership with no explicit dependent table name puts the
// dependent under table splitting.
type ForeignKey struct {
	declaring             *EntityType
	principal             *EntityType
	properties            []*Property
	name                  *annotation
	isOwnership           bool
	principalIsCollection bool
}

// DeclaringEntityType returns the dependent side of the relationship.
func (fk *ForeignKey) DeclaringEntityType() *EntityType { return fk.declaring }

// PrincipalEntityType returns the principal side of the relationship.
func (fk *ForeignKey) PrincipalEntityType() *EntityType { return fk.principal }

// Properties returns the foreign key properties on the declaring side.
func (fk *ForeignKey) Properties() []*Property { return fk.properties }

// IsOwnership reports whether the relationship is an ownership edge.
func (fk *ForeignKey) IsOwnership() bool { return fk.isOwnership }

// PrincipalIsCollection reports whether the principal's navigation to the
// dependent is a collection (one owner, many dependents).
func (fk *ForeignKey) PrincipalIsCollection() bool { return fk.principalIsCollection }

// DefaultConstraintName returns the current unrewritten default constraint
// name, "FK_{dependentTable}_{principalTable}_{columns}". Empty when either
// side maps to no table or both sides share one table (row-internal link).
func (fk *ForeignKey) DefaultConstraintName() string {
	depTable, ok := fk.declaring.TableName()
	if !ok || depTable == "" {
		return ""
	}
	prinTable, ok := fk.principal.TableName()
	if !ok || prinTable == "" {
		return ""
	}
	if depTable == prinTable && fk.declaring.Schema() == fk.principal.Schema() {
		return ""
	}
	return "FK_" + depTable + "_" + prinTable + "_" + joinPropertyNames(fk.properties)
}

// ConstraintName resolves the constraint name: the override if set, the
// default otherwise.
func (fk *ForeignKey) ConstraintName() string {
	if fk.name != nil {
		return fk.name.value
	}
	return fk.DefaultConstraintName()
}

// ConstraintNameSource returns the provenance of the name override.
func (fk *ForeignKey) ConstraintNameSource() (ConfigurationSource, bool) {
	if fk.name == nil {
		return 0, false
	}
	return fk.name.source, true
}

// SetConstraintName writes the constraint name override, subject to
// provenance.
func (fk *ForeignKey) SetConstraintName(value string, source ConfigurationSource) bool {
	next, ok := fk.name.set(value, source)
	if ok {
		fk.name = next
	}
	return ok
}

// RemoveConstraintName clears the constraint name override, subject to
// provenance.
func (fk *ForeignKey) RemoveConstraintName(source ConfigurationSource) bool {
	if _, ok := fk.name.remove(source); !ok {
		return false
	}
	fk.name = nil
	return true
}

// Index is an ordered sequence of properties with a database name.
type Index struct {
	entity     *EntityType
	properties []*Property
	unique     bool
	name       *annotation
}

// EntityType returns the declaring entity type.
func (ix *Index) EntityType() *EntityType { return ix.entity }

// Properties returns the indexed properties in order.
func (ix *Index) Properties() []*Property { return ix.properties }

// IsUnique reports whether the index enforces uniqueness.
func (ix *Index) IsUnique() bool { return ix.unique }

// DefaultDatabaseName returns the current unrewritten default index name,
// "IX_{table}_{columns}". Empty when the entity maps to no table.
func (ix *Index) DefaultDatabaseName() string {
	table, ok := ix.entity.TableName()
	if !ok || table == "" {
		return ""
	}
	return "IX_" + table + "_" + joinPropertyNames(ix.properties)
}

// DatabaseName resolves the index name: the override if set, the default
// otherwise.
func (ix *Index) DatabaseName() string {
	if ix.name != nil {
		return ix.name.value
	}
	return ix.DefaultDatabaseName()
}

// DatabaseNameSource returns the provenance of the name override.
func (ix *Index) DatabaseNameSource() (ConfigurationSource, bool) {
	if ix.name == nil {
		return 0, false
	}
	return ix.name.source, true
}

// SetDatabaseName writes the index name override, subject to provenance.
func (ix *Index) SetDatabaseName(value string, source ConfigurationSource) bool {
	next, ok := ix.name.set(value, source)
	if ok {
		ix.name = next
	}
	return ok
}

// RemoveDatabaseName clears the index name override, subject to provenance.
func (ix *Index) RemoveDatabaseName(source ConfigurationSource) bool {
	if _, ok := ix.name.remove(source); !ok {
		return false
	}
	ix.name = nil
	return true
}

func joinPropertyNames(props []*Property) string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name()
	}
	return strings.Join(names, "_")
}
