package schemafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-naming/internal/convention"
	"schema-naming/internal/model"
	"schema-naming/internal/rewrite"
)

const blogSchema = `
entities:
  - name: Blog
    properties:
      - name: Id
        key: true
      - name: SiteName
  - name: Post
    properties:
      - name: Id
        key: true
      - name: BlogId
      - name: Title
    references:
      - entity: Blog
        properties: [BlogId]
    indexes:
      - properties: [Title]
        unique: true
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(blogSchema))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, "Blog", doc.Entities[0].Name)
	assert.True(t, doc.Entities[0].Properties[0].Key)
	assert.Equal(t, []string{"BlogId"}, doc.Entities[1].References[0].Properties)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no entities", "entities: []"},
		{"unknown field", "entities:\n  - name: A\n    tabel: a"},
		{"duplicate entity", "entities:\n  - name: A\n  - name: A"},
		{"unknown base", "entities:\n  - name: A\n    base: B"},
		{"unknown owned entity", "entities:\n  - name: A\n    owns:\n      - entity: B"},
		{"unknown index property", "entities:\n  - name: A\n    properties:\n      - name: Id\n    indexes:\n      - properties: [Nope]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReplayAppliesConventions(t *testing.T) {
	doc, err := Parse([]byte(blogSchema))
	require.NoError(t, err)

	nr := convention.NewNameRewriter(rewrite.Func(rewrite.SnakeCase), convention.Options{})
	b := model.NewBuilder(convention.DefaultConventions(nr, nil))
	require.NoError(t, Replay(doc, b))
	m := b.Finalize()

	post := m.FindEntityType("Post")
	require.NotNil(t, post)

	table, ok := post.TableName()
	require.True(t, ok)
	assert.Equal(t, "post", table)

	id, ok := post.StoreObject(model.StoreKindTable)
	require.True(t, ok)
	assert.Equal(t, "blog_id", post.FindProperty("BlogId").ColumnName(id))
	assert.Equal(t, "pk_post", post.FindPrimaryKey().Name(id))
	require.Len(t, post.ForeignKeys(), 1)
	assert.Equal(t, "fk_post_blog_blog_id", post.ForeignKeys()[0].ConstraintName())
	require.Len(t, post.Indexes(), 1)
	assert.Equal(t, "ix_post_title", post.Indexes()[0].DatabaseName())
	assert.True(t, post.Indexes()[0].IsUnique())
}

func TestReplayOwnershipAndExplicitNames(t *testing.T) {
	// Ownership is declared on the owner side.
	doc, err := Parse([]byte(`
entities:
  - name: Person
    table: people
    properties:
      - name: Id
        key: true
    owns:
      - entity: Address
        properties: [Id]
  - name: Address
    properties:
      - name: Id
        key: true
      - name: Street
        column: street_line_1
      - name: City
`))
	require.NoError(t, err)

	nr := convention.NewNameRewriter(rewrite.Func(rewrite.SnakeCase), convention.Options{})
	b := model.NewBuilder(convention.DefaultConventions(nr, nil))
	require.NoError(t, Replay(doc, b))
	m := b.Finalize()

	person := m.FindEntityType("Person")
	address := m.FindEntityType("Address")

	// Explicit table name applied after the structural links.
	table, ok := person.TableName()
	require.True(t, ok)
	assert.Equal(t, "people", table)

	// The owned entity is split into the owner's table.
	_, hasOwn := address.TableNameSource()
	assert.False(t, hasOwn)
	id, ok := address.StoreObject(model.StoreKindTable)
	require.True(t, ok)
	assert.Equal(t, "people", id.Name)

	// Convention column is prefixed; the explicit one is untouched.
	assert.Equal(t, "person_city", address.FindProperty("City").ColumnName(id))
	assert.Equal(t, "street_line_1", address.FindProperty("Street").ColumnName(id))
}
