package model

// Conventions react to structural mutations performed through a Builder.
// Each interface corresponds to one event; a convention implements the ones
// it cares about and is registered in the matching ConventionSet slot.
//
// Events are delivered synchronously, exactly once per mutation, in the
// order the Builder performs mutations. Writes a convention makes back into
// the model go through the conditional setters directly and do not re-enter
// dispatch.

// EntityAddedConvention runs after an entity type is added to the model.
type EntityAddedConvention interface {
	ProcessEntityAdded(entity *EntityType)
}

// BaseTypeChangedConvention runs after an entity's base type changes.
// Either of newBase and oldBase may be nil.
type BaseTypeChangedConvention interface {
	ProcessBaseTypeChanged(entity *EntityType, newBase, oldBase *EntityType)
}

// PropertyAddedConvention runs after a property is added to an entity.
type PropertyAddedConvention interface {
	ProcessPropertyAdded(property *Property)
}

// KeyAddedConvention runs after a key is added to an entity.
type KeyAddedConvention interface {
	ProcessKeyAdded(key *Key)
}

// ForeignKeyAddedConvention runs after a foreign key is added.
type ForeignKeyAddedConvention interface {
	ProcessForeignKeyAdded(foreignKey *ForeignKey)
}

// ForeignKeyOwnershipChangedConvention runs after a foreign key's ownership
// flag changes.
type ForeignKeyOwnershipChangedConvention interface {
	ProcessForeignKeyOwnershipChanged(foreignKey *ForeignKey)
}

// IndexAddedConvention runs after an index is added to an entity.
type IndexAddedConvention interface {
	ProcessIndexAdded(index *Index)
}

// EntityAnnotationChangedConvention runs after a name annotation changes on
// an entity. An empty newValue means the annotation was removed.
type EntityAnnotationChangedConvention interface {
	ProcessEntityAnnotationChanged(entity *EntityType, kind AnnotationKind, newValue, oldValue string)
}

// ModelFinalizingConvention runs exactly once when the model is finalized.
// Conventions in the ModelFinalizing slot run in registration order; hosts
// are responsible for registering passes whose output later passes depend on
// first.
type ModelFinalizingConvention interface {
	ProcessModelFinalizing(model *Model)
}

// ConventionSet holds the conventions registered for each event, in
// execution order.
type ConventionSet struct {
	EntityAdded                []EntityAddedConvention
	BaseTypeChanged            []BaseTypeChangedConvention
	PropertyAdded              []PropertyAddedConvention
	KeyAdded                   []KeyAddedConvention
	ForeignKeyAdded            []ForeignKeyAddedConvention
	ForeignKeyOwnershipChanged []ForeignKeyOwnershipChangedConvention
	IndexAdded                 []IndexAddedConvention
	EntityAnnotationChanged    []EntityAnnotationChangedConvention
	ModelFinalizing            []ModelFinalizingConvention
}

// Add registers a convention in every slot whose interface it implements.
func (cs *ConventionSet) Add(convention any) {
	if c, ok := convention.(EntityAddedConvention); ok {
		cs.EntityAdded = append(cs.EntityAdded, c)
	}
	if c, ok := convention.(BaseTypeChangedConvention); ok {
		cs.BaseTypeChanged = append(cs.BaseTypeChanged, c)
	}
	if c, ok := convention.(PropertyAddedConvention); ok {
		cs.PropertyAdded = append(cs.PropertyAdded, c)
	}
	if c, ok := convention.(KeyAddedConvention); ok {
		cs.KeyAdded = append(cs.KeyAdded, c)
	}
	if c, ok := convention.(ForeignKeyAddedConvention); ok {
		cs.ForeignKeyAdded = append(cs.ForeignKeyAdded, c)
	}
	if c, ok := convention.(ForeignKeyOwnershipChangedConvention); ok {
		cs.ForeignKeyOwnershipChanged = append(cs.ForeignKeyOwnershipChanged, c)
	}
	if c, ok := convention.(IndexAddedConvention); ok {
		cs.IndexAdded = append(cs.IndexAdded, c)
	}
	if c, ok := convention.(EntityAnnotationChangedConvention); ok {
		cs.EntityAnnotationChanged = append(cs.EntityAnnotationChanged, c)
	}
	if c, ok := convention.(ModelFinalizingConvention); ok {
		cs.ModelFinalizing = append(cs.ModelFinalizing, c)
	}
}
