package introspect

import (
	"strings"

	"schema-naming/internal/model"
	"schema-naming/internal/sqlutil"
)

// BuildRenamePlan diffs a database laid out with the model's unrewritten
// default names against the model's resolved names and returns the ALTER
// statements that bring the database in line. Column and index renames for a
// table are emitted before the table's own rename, so every statement refers
// to a name the database still has when it runs. Key and foreign-key
// constraints are out of scope: MySQL has no rename for them.
func BuildRenamePlan(m *model.Model, db *Database) []string {
	actual := make(map[string]*Table, len(db.Tables))
	for i := range db.Tables {
		actual[db.Tables[i].Name] = &db.Tables[i]
	}

	var plan []string
	for _, e := range m.EntityTypes() {
		if !ownsTable(e) {
			continue
		}
		t, ok := actual[e.DefaultTableName()]
		if !ok {
			continue
		}
		id, ok := e.StoreObject(model.StoreKindTable)
		if !ok {
			continue
		}
		plan = append(plan, tableStatements(m, e, id, t)...)
	}
	return plan
}

// ownsTable reports whether the entity's resolved table is its own, as
// opposed to one borrowed from a hierarchy root or an owner under table
// splitting.
func ownsTable(e *model.EntityType) bool {
	if _, ok := e.TableNameSource(); ok {
		return true
	}
	return e.BaseType() == nil && e.FindOwnership() == nil
}

func tableStatements(m *model.Model, owner *model.EntityType, id model.StoreObjectIdentifier, t *Table) []string {
	columns := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		columns[c] = true
	}
	indexes := make(map[string]bool, len(t.Indexes))
	for _, ix := range t.Indexes {
		indexes[ix] = true
	}

	var stmts []string
	planned := make(map[string]bool)
	for _, e := range tableEntities(m, id) {
		for _, p := range e.Properties() {
			resolved := p.ColumnName(id)
			raw, ok := matchColumn(columns, e, owner, p, id)
			if !ok || raw == resolved || planned[raw] {
				continue
			}
			planned[raw] = true
			stmts = append(stmts,
				"ALTER TABLE "+sqlutil.QuoteIdentifier(t.Name)+
					" RENAME COLUMN "+sqlutil.QuoteIdentifier(raw)+
					" TO "+sqlutil.QuoteIdentifier(resolved)+";")
		}
		for _, ix := range e.Indexes() {
			raw := "IX_" + t.Name + "_" + propertyNames(ix.Properties())
			resolved := ix.DatabaseName()
			if resolved == "" || raw == resolved || !indexes[raw] {
				continue
			}
			stmts = append(stmts,
				"ALTER TABLE "+sqlutil.QuoteIdentifier(t.Name)+
					" RENAME INDEX "+sqlutil.QuoteIdentifier(raw)+
					" TO "+sqlutil.QuoteIdentifier(resolved)+";")
		}
	}
	if id.Name != t.Name {
		stmts = append(stmts,
			"ALTER TABLE "+sqlutil.QuoteIdentifier(t.Name)+
				" RENAME TO "+sqlutil.QuoteIdentifier(id.Name)+";")
	}
	return stmts
}

// tableEntities returns every entity mapped to the given table: the owner
// itself plus hierarchy members and split owned types sharing it.
func tableEntities(m *model.Model, id model.StoreObjectIdentifier) []*model.EntityType {
	var out []*model.EntityType
	for _, e := range m.EntityTypes() {
		other, ok := e.StoreObject(model.StoreKindTable)
		if ok && other == id {
			out = append(out, e)
		}
	}
	return out
}

// matchColumn finds the physical column a property maps to in a
// default-named database. Guests in a shared table (hierarchy members, split
// owned types) may carry a short-name prefix the property's own default does
// not show.
func matchColumn(columns map[string]bool, e, owner *model.EntityType, p *model.Property, id model.StoreObjectIdentifier) (string, bool) {
	candidates := []string{p.DefaultColumnName(id)}
	if e != owner {
		candidates = append(candidates, e.Name()+"_"+p.Name())
	}
	candidates = append(candidates, p.Name())
	for _, c := range candidates {
		if columns[c] {
			return c, true
		}
	}
	return "", false
}

func propertyNames(props []*model.Property) string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name()
	}
	return strings.Join(names, "_")
}
