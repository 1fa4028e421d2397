package model

// Builder is the mutation surface of the model. Every mutation is applied
// first, then the matching event is dispatched to the registered
// conventions. The builder is the host's API; conventions themselves mutate
// the model through the conditional setters without re-entering dispatch.
type Builder struct {
	model       *Model
	conventions *ConventionSet
}

// NewBuilder returns a builder over a fresh model with the given convention
// set (nil means no conventions).
func NewBuilder(conventions *ConventionSet) *Builder {
	if conventions == nil {
		conventions = &ConventionSet{}
	}
	return &Builder{model: NewModel(), conventions: conventions}
}

// Model returns the model under construction.
func (b *Builder) Model() *Model { return b.model }

// Entity returns the entity type with the given short name, adding it to the
// model (and firing EntityAdded) if it does not exist yet.
func (b *Builder) Entity(name string) *EntityType {
	if e := b.model.FindEntityType(name); e != nil {
		return e
	}
	e := b.model.addEntityType(name)
	for _, c := range b.conventions.EntityAdded {
		c.ProcessEntityAdded(e)
	}
	return e
}

// SetBaseType changes an entity's base type. A nil base removes the entity
// from its hierarchy.
func (b *Builder) SetBaseType(entity, base *EntityType) {
	old := entity.baseType
	if old == base {
		return
	}
	if old != nil {
		for i, d := range old.derived {
			if d == entity {
				old.derived = append(old.derived[:i], old.derived[i+1:]...)
				break
			}
		}
	}
	entity.baseType = base
	if base != nil {
		base.derived = append(base.derived, entity)
	}
	for _, c := range b.conventions.BaseTypeChanged {
		c.ProcessBaseTypeChanged(entity, base, old)
	}
}

// AddProperty declares a property on the entity. Adding an existing name
// returns the existing property without firing an event.
func (b *Builder) AddProperty(entity *EntityType, name string) *Property {
	if p := entity.propertyIdx[name]; p != nil {
		return p
	}
	p := &Property{entity: entity, name: name}
	entity.properties = append(entity.properties, p)
	entity.propertyIdx[name] = p
	for _, c := range b.conventions.PropertyAdded {
		c.ProcessPropertyAdded(p)
	}
	return p
}

// AddKey declares a key over the named properties. The properties must have
// been added already.
func (b *Builder) AddKey(entity *EntityType, primary bool, propertyNames ...string) *Key {
	k := &Key{entity: entity, primary: primary, properties: b.resolveProperties(entity, propertyNames)}
	entity.keys = append(entity.keys, k)
	if primary {
		entity.primaryKey = k
	}
	for _, c := range b.conventions.KeyAdded {
		c.ProcessKeyAdded(k)
	}
	return k
}

// AddForeignKey declares a foreign key from declaring to principal over the
// named properties of the declaring side.
func (b *Builder) AddForeignKey(declaring, principal *EntityType, propertyNames ...string) *ForeignKey {
	fk := &ForeignKey{
		declaring:  declaring,
		principal:  principal,
		properties: b.resolveProperties(declaring, propertyNames),
	}
	declaring.foreignKeys = append(declaring.foreignKeys, fk)
	for _, c := range b.conventions.ForeignKeyAdded {
		c.ProcessForeignKeyAdded(fk)
	}
	return fk
}

// SetNavigationCollection records whether the principal's navigation to the
// dependent is a collection. This is plain relationship metadata; no event
// fires.
func (b *Builder) SetNavigationCollection(fk *ForeignKey, collection bool) {
	fk.principalIsCollection = collection
}

// SetOwnership flips the ownership flag of a foreign key and fires
// ForeignKeyOwnershipChanged when the flag actually changes.
func (b *Builder) SetOwnership(fk *ForeignKey, ownership bool) {
	if fk.isOwnership == ownership {
		return
	}
	fk.isOwnership = ownership
	for _, c := range b.conventions.ForeignKeyOwnershipChanged {
		c.ProcessForeignKeyOwnershipChanged(fk)
	}
}

// AddIndex declares an index over the named properties.
func (b *Builder) AddIndex(entity *EntityType, unique bool, propertyNames ...string) *Index {
	ix := &Index{entity: entity, unique: unique, properties: b.resolveProperties(entity, propertyNames)}
	entity.indexes = append(entity.indexes, ix)
	for _, c := range b.conventions.IndexAdded {
		c.ProcessIndexAdded(ix)
	}
	return ix
}

// SetAnnotation writes a name annotation on the entity and fires
// EntityAnnotationChanged when the write takes effect.
func (b *Builder) SetAnnotation(entity *EntityType, kind AnnotationKind, value string, source ConfigurationSource) bool {
	old, _, _ := entity.Annotation(kind)
	if !entity.SetAnnotation(kind, value, source) {
		return false
	}
	for _, c := range b.conventions.EntityAnnotationChanged {
		c.ProcessEntityAnnotationChanged(entity, kind, value, old)
	}
	return true
}

// RemoveAnnotation clears a name annotation on the entity and fires
// EntityAnnotationChanged (with an empty new value) when the removal takes
// effect.
func (b *Builder) RemoveAnnotation(entity *EntityType, kind AnnotationKind, source ConfigurationSource) bool {
	old, _, ok := entity.Annotation(kind)
	if !ok {
		return false
	}
	if !entity.RemoveAnnotation(kind, source) {
		return false
	}
	for _, c := range b.conventions.EntityAnnotationChanged {
		c.ProcessEntityAnnotationChanged(entity, kind, "", old)
	}
	return true
}

// Finalize fires ModelFinalizing once and marks the model finalized.
// ModelFinalizing conventions run in registration order; any pass that
// rewrites the output of another must be registered after it.
func (b *Builder) Finalize() *Model {
	if b.model.finalized {
		return b.model
	}
	for _, c := range b.conventions.ModelFinalizing {
		c.ProcessModelFinalizing(b.model)
	}
	b.model.finalized = true
	return b.model
}

func (b *Builder) resolveProperties(entity *EntityType, names []string) []*Property {
	props := make([]*Property, 0, len(names))
	for _, name := range names {
		p := entity.propertyIdx[name]
		if p == nil {
			p = b.AddProperty(entity, name)
		}
		props = append(props, p)
	}
	return props
}
