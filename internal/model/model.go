// Package model holds the relational schema model graph: entity types,
// properties, keys, foreign keys, indexes and the store objects they map to.
// Every name-bearing attribute carries a configuration source so conventions
// can freely recompute their own output without ever clobbering a name the
// user set explicitly.
//
// The model is built incrementally through a Builder, which dispatches one
// event per structural mutation to the registered conventions. The whole
// construction session is single-threaded; nothing here is safe for
// concurrent use.
package model

// ConfigurationSource records who produced the current value of a name
// attribute. Convention-sourced values may be recomputed or removed by
// conventions at any time; explicit values belong to the user and win over
// any convention write.
type ConfigurationSource int

const (
	// SourceConvention marks a value generated by a convention.
	SourceConvention ConfigurationSource = iota
	// SourceExplicit marks a value fixed by the user.
	SourceExplicit
)

// String implements fmt.Stringer.
func (s ConfigurationSource) String() string {
	switch s {
	case SourceConvention:
		return "convention"
	case SourceExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// overrides reports whether a write from source may replace a value that was
// set by existing.
func (s ConfigurationSource) overrides(existing ConfigurationSource) bool {
	return s == SourceExplicit || existing == SourceConvention
}

// AnnotationKind identifies one of the closed set of name annotations an
// entity type carries. Using a closed enum (instead of annotation-name
// strings) makes the convention dispatch an exhaustive switch.
type AnnotationKind int

const (
	// AnnotationTableName is the entity's table name.
	AnnotationTableName AnnotationKind = iota
	// AnnotationSchema is the entity's table schema.
	AnnotationSchema
	// AnnotationViewName is the entity's view name.
	AnnotationViewName
	// AnnotationViewSchema is the entity's view schema.
	AnnotationViewSchema
	// AnnotationFunctionName maps the entity to a table-valued function.
	AnnotationFunctionName
	// AnnotationSQLQuery maps the entity to a parameterized query.
	AnnotationSQLQuery
)

// String implements fmt.Stringer.
func (k AnnotationKind) String() string {
	switch k {
	case AnnotationTableName:
		return "table_name"
	case AnnotationSchema:
		return "schema"
	case AnnotationViewName:
		return "view_name"
	case AnnotationViewSchema:
		return "view_schema"
	case AnnotationFunctionName:
		return "function_name"
	case AnnotationSQLQuery:
		return "sql_query"
	default:
		return "unknown"
	}
}

// StoreObjectKind identifies the kind of physical object an entity maps to.
type StoreObjectKind int

const (
	// StoreKindTable is a regular table.
	StoreKindTable StoreObjectKind = iota
	// StoreKindView is a database view.
	StoreKindView
	// StoreKindFunction is a table-valued function.
	StoreKindFunction
	// StoreKindSQLQuery is a parameterized SQL query.
	StoreKindSQLQuery
)

// StoreObjectKinds lists all kinds in resolution order.
var StoreObjectKinds = []StoreObjectKind{StoreKindTable, StoreKindView, StoreKindFunction, StoreKindSQLQuery}

// String implements fmt.Stringer.
func (k StoreObjectKind) String() string {
	switch k {
	case StoreKindTable:
		return "table"
	case StoreKindView:
		return "view"
	case StoreKindFunction:
		return "function"
	case StoreKindSQLQuery:
		return "sql_query"
	default:
		return "unknown"
	}
}

// StoreObjectIdentifier identifies one physical object an entity type maps
// to: a (kind, name, schema) tuple.
type StoreObjectIdentifier struct {
	Kind   StoreObjectKind
	Name   string
	Schema string
}

// annotation is a name value plus its provenance. Absence is represented by
// a nil pointer in the owning map/field, never by an empty value.
type annotation struct {
	value  string
	source ConfigurationSource
}

// set replaces the annotation value if source is allowed to override the
// existing one. It returns the updated annotation (possibly the original)
// and whether the write took effect.
func (a *annotation) set(value string, source ConfigurationSource) (*annotation, bool) {
	if a == nil {
		return &annotation{value: value, source: source}, true
	}
	if !source.overrides(a.source) {
		return a, false
	}
	return &annotation{value: value, source: source}, true
}

// remove clears the annotation if source is allowed to. A convention can
// only remove convention-sourced values.
func (a *annotation) remove(source ConfigurationSource) (*annotation, bool) {
	if a == nil {
		return nil, false
	}
	if !source.overrides(a.source) {
		return a, false
	}
	return nil, true
}

// Model is the root of the schema model graph.
type Model struct {
	entities  map[string]*EntityType
	ordered   []*EntityType
	finalized bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{entities: make(map[string]*EntityType)}
}

// EntityTypes returns all entity types in insertion order.
func (m *Model) EntityTypes() []*EntityType {
	return m.ordered
}

// FindEntityType returns the entity type with the given short name, or nil.
func (m *Model) FindEntityType(name string) *EntityType {
	return m.entities[name]
}

// Finalized reports whether Builder.Finalize has run.
func (m *Model) Finalized() bool {
	return m.finalized
}

func (m *Model) addEntityType(name string) *EntityType {
	e := &EntityType{
		model:       m,
		name:        name,
		annotations: make(map[AnnotationKind]*annotation),
		propertyIdx: make(map[string]*Property),
	}
	m.entities[name] = e
	m.ordered = append(m.ordered, e)
	return e
}
