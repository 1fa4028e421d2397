// Package schemafile loads declarative schema definitions from YAML and
// replays them through the model builder, so the conventions observe the
// same incremental mutation stream a programmatic host would produce.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"schema-naming/internal/model"
)

// Document is the root of a schema definition file.
type Document struct {
	Entities []Entity `yaml:"entities"`
}

// Entity declares one entity type with its members and mappings.
type Entity struct {
	Name       string      `yaml:"name"`
	Base       string      `yaml:"base"`
	Table      string      `yaml:"table"`
	Schema     string      `yaml:"schema"`
	View       string      `yaml:"view"`
	ViewSchema string      `yaml:"view_schema"`
	Function   string      `yaml:"function"`
	SQLQuery   string      `yaml:"sql_query"`
	Properties []Property  `yaml:"properties"`
	Indexes    []Index     `yaml:"indexes"`
	Owns       []Ownership `yaml:"owns"`
	References []Reference `yaml:"references"`
}

// Property declares one scalar member. Column fixes the column name
// explicitly; Key marks participation in the primary key.
type Property struct {
	Name   string `yaml:"name"`
	Key    bool   `yaml:"key"`
	Column string `yaml:"column"`
}

// Index declares an index over previously declared properties.
type Index struct {
	Properties []string `yaml:"properties"`
	Unique     bool     `yaml:"unique"`
}

// Ownership declares that this entity owns another through the given
// foreign-key properties of the owned side.
type Ownership struct {
	Entity     string   `yaml:"entity"`
	Collection bool     `yaml:"collection"`
	Properties []string `yaml:"properties"`
}

// Reference declares a plain foreign key to another entity.
type Reference struct {
	Entity     string   `yaml:"entity"`
	Properties []string `yaml:"properties"`
}

// Load reads and parses a schema definition file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %q: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a schema definition. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schema file is empty")
		}
		return nil, err
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (doc *Document) validate() error {
	if len(doc.Entities) == 0 {
		return errors.New("schema defines no entities")
	}
	seen := make(map[string]struct{}, len(doc.Entities))
	for _, ent := range doc.Entities {
		if ent.Name == "" {
			return errors.New("entity with empty name")
		}
		if _, dup := seen[ent.Name]; dup {
			return fmt.Errorf("duplicate entity %q", ent.Name)
		}
		seen[ent.Name] = struct{}{}
	}
	for _, ent := range doc.Entities {
		props := make(map[string]struct{}, len(ent.Properties))
		for _, p := range ent.Properties {
			if p.Name == "" {
				return fmt.Errorf("entity %q: property with empty name", ent.Name)
			}
			if _, dup := props[p.Name]; dup {
				return fmt.Errorf("entity %q: duplicate property %q", ent.Name, p.Name)
			}
			props[p.Name] = struct{}{}
		}
		if ent.Base != "" {
			if _, ok := seen[ent.Base]; !ok {
				return fmt.Errorf("entity %q: unknown base type %q", ent.Name, ent.Base)
			}
		}
		for _, own := range ent.Owns {
			if _, ok := seen[own.Entity]; !ok {
				return fmt.Errorf("entity %q: owns unknown entity %q", ent.Name, own.Entity)
			}
		}
		for _, ref := range ent.References {
			if _, ok := seen[ref.Entity]; !ok {
				return fmt.Errorf("entity %q: references unknown entity %q", ent.Name, ref.Entity)
			}
			for _, name := range ref.Properties {
				if _, ok := props[name]; !ok {
					return fmt.Errorf("entity %q: reference to %q uses unknown property %q", ent.Name, ref.Entity, name)
				}
			}
		}
		for i, ix := range ent.Indexes {
			if len(ix.Properties) == 0 {
				return fmt.Errorf("entity %q: index %d has no properties", ent.Name, i)
			}
			for _, name := range ix.Properties {
				if _, ok := props[name]; !ok {
					return fmt.Errorf("entity %q: index %d uses unknown property %q", ent.Name, i, name)
				}
			}
		}
	}
	return nil
}

// Replay drives the builder through the document: entities with properties
// and keys first, then hierarchy links, then ownerships and references, then
// explicit name annotations, then indexes. Explicit annotations arrive after
// the structural links on purpose: that is the mutation order that exercises
// hierarchy and splitting transitions.
func Replay(doc *Document, b *model.Builder) error {
	for _, ent := range doc.Entities {
		e := b.Entity(ent.Name)
		var keyProps []string
		for _, prop := range ent.Properties {
			p := b.AddProperty(e, prop.Name)
			if prop.Column != "" {
				p.SetColumnName(prop.Column, model.SourceExplicit)
			}
			if prop.Key {
				keyProps = append(keyProps, prop.Name)
			}
		}
		if len(keyProps) > 0 {
			b.AddKey(e, true, keyProps...)
		}
	}

	for _, ent := range doc.Entities {
		if ent.Base == "" {
			continue
		}
		b.SetBaseType(b.Model().FindEntityType(ent.Name), b.Model().FindEntityType(ent.Base))
	}

	for _, ent := range doc.Entities {
		owner := b.Model().FindEntityType(ent.Name)
		for _, own := range ent.Owns {
			owned := b.Model().FindEntityType(own.Entity)
			fk := b.AddForeignKey(owned, owner, own.Properties...)
			b.SetNavigationCollection(fk, own.Collection)
			b.SetOwnership(fk, true)
		}
		for _, ref := range ent.References {
			b.AddForeignKey(owner, b.Model().FindEntityType(ref.Entity), ref.Properties...)
		}
	}

	// Annotation delivery order is part of the convention contract (setting
	// a view name clears a convention table name), so apply them in a fixed
	// order rather than iterating a map.
	for _, ent := range doc.Entities {
		e := b.Model().FindEntityType(ent.Name)
		annotations := []struct {
			kind  model.AnnotationKind
			value string
		}{
			{model.AnnotationTableName, ent.Table},
			{model.AnnotationSchema, ent.Schema},
			{model.AnnotationViewName, ent.View},
			{model.AnnotationViewSchema, ent.ViewSchema},
			{model.AnnotationFunctionName, ent.Function},
			{model.AnnotationSQLQuery, ent.SQLQuery},
		}
		for _, a := range annotations {
			if a.value != "" {
				b.SetAnnotation(e, a.kind, a.value, model.SourceExplicit)
			}
		}
	}

	for _, ent := range doc.Entities {
		e := b.Model().FindEntityType(ent.Name)
		for _, ix := range ent.Indexes {
			b.AddIndex(e, ix.Unique, ix.Properties...)
		}
	}

	return nil
}
