package main

import (
	"fmt"
	"io"

	"schema-naming/internal/convention"
	"schema-naming/internal/model"
)

// printReport writes the resolved names for every entity: mapped store
// objects, columns, and the constraint and index names that land in the
// database.
func printReport(w io.Writer, m *model.Model) error {
	for i, e := range m.EntityTypes() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s [%s]\n", e.Name(), convention.Classify(e))

		ids := e.StoreObjects()
		for _, id := range ids {
			target := id.Name
			if id.Schema != "" {
				target = id.Schema + "." + target
			}
			fmt.Fprintf(w, "  %s: %s\n", id.Kind, target)
		}
		if len(ids) == 0 {
			continue
		}

		// Columns and constraints resolve against the primary mapping.
		id := ids[0]
		for _, p := range e.Properties() {
			fmt.Fprintf(w, "  column %s: %s\n", p.Name(), p.ColumnName(id))
		}
		for _, k := range e.Keys() {
			name := k.Name(id)
			if name == "" {
				continue
			}
			label := "key"
			if k.IsPrimary() {
				label = "primary key"
			}
			fmt.Fprintf(w, "  %s: %s\n", label, name)
		}
		for _, fk := range e.ForeignKeys() {
			if name := fk.ConstraintName(); name != "" {
				fmt.Fprintf(w, "  foreign key -> %s: %s\n", fk.PrincipalEntityType().Name(), name)
			}
		}
		for _, ix := range e.Indexes() {
			if name := ix.DatabaseName(); name != "" {
				fmt.Fprintf(w, "  index: %s\n", name)
			}
		}
	}
	return nil
}
