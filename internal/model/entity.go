package model

// EntityType is one node of the schema model graph. Its position in the
// inheritance tree is kept as a weak parent reference plus a derived-type
// list owned by the parent; all mapping-mode behavior is computed from the
// current state of these links, never cached.
type EntityType struct {
	model       *Model
	name        string
	baseType    *EntityType
	derived     []*EntityType
	annotations map[AnnotationKind]*annotation
	properties  []*Property
	propertyIdx map[string]*Property
	keys        []*Key
	primaryKey  *Key
	foreignKeys []*ForeignKey
	indexes     []*Index
}

// Name returns the entity's short name.
func (e *EntityType) Name() string { return e.name }

// Model returns the owning model.
func (e *EntityType) Model() *Model { return e.model }

// BaseType returns the direct base type, or nil for a hierarchy root.
func (e *EntityType) BaseType() *EntityType { return e.baseType }

// RootType returns the root of the inheritance tree (the entity itself when
// it has no base type).
func (e *EntityType) RootType() *EntityType {
	root := e
	for root.baseType != nil {
		root = root.baseType
	}
	return root
}

// DerivedTypes returns the directly derived types.
func (e *EntityType) DerivedTypes() []*EntityType { return e.derived }

// DerivedTypesInclusive returns the entity itself followed by every
// transitively derived type, in depth-first order.
func (e *EntityType) DerivedTypesInclusive() []*EntityType {
	out := []*EntityType{e}
	for _, d := range e.derived {
		out = append(out, d.DerivedTypesInclusive()...)
	}
	return out
}

// Annotation returns the raw annotation value and its source, if set.
func (e *EntityType) Annotation(kind AnnotationKind) (string, ConfigurationSource, bool) {
	a := e.annotations[kind]
	if a == nil {
		return "", 0, false
	}
	return a.value, a.source, true
}

// AnnotationSource returns the provenance of an annotation, if set.
func (e *EntityType) AnnotationSource(kind AnnotationKind) (ConfigurationSource, bool) {
	a := e.annotations[kind]
	if a == nil {
		return 0, false
	}
	return a.source, true
}

// SetAnnotation writes an annotation value. A convention-sourced write is
// refused when the existing value is explicit. Reports whether the write
// took effect.
func (e *EntityType) SetAnnotation(kind AnnotationKind, value string, source ConfigurationSource) bool {
	next, ok := e.annotations[kind].set(value, source)
	if ok {
		e.annotations[kind] = next
	}
	return ok
}

// RemoveAnnotation clears an annotation. A convention-sourced removal only
// removes convention-sourced values. Reports whether anything was removed.
func (e *EntityType) RemoveAnnotation(kind AnnotationKind, source ConfigurationSource) bool {
	if _, ok := e.annotations[kind].remove(source); !ok {
		return false
	}
	delete(e.annotations, kind)
	return true
}

// hasAlternateStoreObject reports whether a view, function or SQL query
// mapping annotation is present.
func (e *EntityType) hasAlternateStoreObject() bool {
	for _, kind := range []AnnotationKind{AnnotationViewName, AnnotationFunctionName, AnnotationSQLQuery} {
		if _, ok := e.annotations[kind]; ok {
			return true
		}
	}
	return false
}

// DefaultTableName returns the unrewritten default table name: the entity's
// short name.
func (e *EntityType) DefaultTableName() string { return e.name }

// DefaultSchema returns the unrewritten default schema.
func (e *EntityType) DefaultSchema() string { return "" }

// TableName resolves the table the entity currently maps to. Resolution, in
// order: own annotation; the base type's table (hierarchy member); absent
// when the entity is mapped to a view, function or query; the owner's table
// under table splitting; the default. The second result is false when the
// entity maps to no table at all.
func (e *EntityType) TableName() (string, bool) {
	if a := e.annotations[AnnotationTableName]; a != nil {
		return a.value, true
	}
	if e.baseType != nil {
		return e.baseType.TableName()
	}
	if e.hasAlternateStoreObject() {
		return "", false
	}
	if fk := e.FindOwnership(); fk != nil && !fk.PrincipalIsCollection() {
		return fk.PrincipalEntityType().TableName()
	}
	return e.DefaultTableName(), true
}

// TableNameSource returns the provenance of the table-name annotation
// itself. The second result is false when no annotation is set (the table
// name, if any, is inherited or default).
func (e *EntityType) TableNameSource() (ConfigurationSource, bool) {
	return e.AnnotationSource(AnnotationTableName)
}

// Schema resolves the schema of the entity's table, following the same
// inheritance and ownership links as TableName.
func (e *EntityType) Schema() string {
	if a := e.annotations[AnnotationSchema]; a != nil {
		return a.value
	}
	if e.baseType != nil {
		return e.baseType.Schema()
	}
	if fk := e.FindOwnership(); fk != nil && !fk.PrincipalIsCollection() {
		if _, explicit := e.annotations[AnnotationTableName]; !explicit {
			return fk.PrincipalEntityType().Schema()
		}
	}
	return e.DefaultSchema()
}

// ViewName returns the view name annotation, if set.
func (e *EntityType) ViewName() (string, bool) {
	a := e.annotations[AnnotationViewName]
	if a == nil {
		return "", false
	}
	return a.value, true
}

// FunctionName returns the function name annotation, if set.
func (e *EntityType) FunctionName() (string, bool) {
	a := e.annotations[AnnotationFunctionName]
	if a == nil {
		return "", false
	}
	return a.value, true
}

// SQLQuery returns the SQL query annotation, if set.
func (e *EntityType) SQLQuery() (string, bool) {
	a := e.annotations[AnnotationSQLQuery]
	if a == nil {
		return "", false
	}
	return a.value, true
}

// StoreObject resolves the identifier of the store object of the given kind
// the entity currently maps to, if any.
func (e *EntityType) StoreObject(kind StoreObjectKind) (StoreObjectIdentifier, bool) {
	switch kind {
	case StoreKindTable:
		name, ok := e.TableName()
		if !ok || name == "" {
			return StoreObjectIdentifier{}, false
		}
		return StoreObjectIdentifier{Kind: kind, Name: name, Schema: e.Schema()}, true
	case StoreKindView:
		name, ok := e.ViewName()
		if !ok {
			return StoreObjectIdentifier{}, false
		}
		schema := ""
		if a := e.annotations[AnnotationViewSchema]; a != nil {
			schema = a.value
		}
		return StoreObjectIdentifier{Kind: kind, Name: name, Schema: schema}, true
	case StoreKindFunction:
		name, ok := e.FunctionName()
		if !ok {
			return StoreObjectIdentifier{}, false
		}
		return StoreObjectIdentifier{Kind: kind, Name: name}, true
	case StoreKindSQLQuery:
		name, ok := e.SQLQuery()
		if !ok {
			return StoreObjectIdentifier{}, false
		}
		return StoreObjectIdentifier{Kind: kind, Name: name}, true
	default:
		return StoreObjectIdentifier{}, false
	}
}

// StoreObjects returns every store object the entity currently maps to.
func (e *EntityType) StoreObjects() []StoreObjectIdentifier {
	var out []StoreObjectIdentifier
	for _, kind := range StoreObjectKinds {
		if id, ok := e.StoreObject(kind); ok {
			out = append(out, id)
		}
	}
	return out
}

// Properties returns the entity's declared properties.
func (e *EntityType) Properties() []*Property { return e.properties }

// FindProperty returns the declared property with the given name, or nil.
func (e *EntityType) FindProperty(name string) *Property {
	return e.propertyIdx[name]
}

// Keys returns the entity's declared keys.
func (e *EntityType) Keys() []*Key { return e.keys }

// FindPrimaryKey returns the primary key, walking up the inheritance tree:
// derived types share the root's primary key.
func (e *EntityType) FindPrimaryKey() *Key {
	if e.primaryKey != nil {
		return e.primaryKey
	}
	if e.baseType != nil {
		return e.baseType.FindPrimaryKey()
	}
	return nil
}

// ForeignKeys returns the foreign keys declared on the entity.
func (e *EntityType) ForeignKeys() []*ForeignKey { return e.foreignKeys }

// Indexes returns the entity's declared indexes.
func (e *EntityType) Indexes() []*Index { return e.indexes }

// FindOwnership returns the foreign key through which the entity is owned,
// or nil when the entity is not owned.
func (e *EntityType) FindOwnership() *ForeignKey {
	for _, fk := range e.foreignKeys {
		if fk.isOwnership {
			return fk
		}
	}
	return nil
}

// RowInternalForeignKeys returns the foreign keys that make the entity share
// the given table with another entity type rather than own it: the ownership
// edge under table splitting.
func (e *EntityType) RowInternalForeignKeys(id StoreObjectIdentifier) []*ForeignKey {
	if id.Kind != StoreKindTable {
		return nil
	}
	fk := e.FindOwnership()
	if fk == nil || fk.PrincipalIsCollection() {
		return nil
	}
	if src, ok := e.TableNameSource(); ok && src == SourceExplicit {
		return nil
	}
	if owner, ok := fk.PrincipalEntityType().TableName(); !ok || owner != id.Name {
		return nil
	}
	return []*ForeignKey{fk}
}
