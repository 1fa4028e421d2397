package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-naming/internal/model"
	"schema-naming/internal/rewrite"
)

func snakeBuilder() (*model.Builder, *NameRewriter) {
	nr := NewNameRewriter(rewrite.Func(rewrite.SnakeCase), Options{})
	return model.NewBuilder(DefaultConventions(nr, nil)), nr
}

func pluralizingBuilder() *model.Builder {
	snake := rewrite.Func(rewrite.SnakeCase)
	nr := NewNameRewriter(snake, Options{
		TableRewriter: rewrite.NewPluralizer(snake, nil),
	})
	return model.NewBuilder(DefaultConventions(nr, nil))
}

func tableID(e *model.EntityType) model.StoreObjectIdentifier {
	id, _ := e.StoreObject(model.StoreKindTable)
	return id
}

func TestEntityAddedRewritesTableName(t *testing.T) {
	b, _ := snakeBuilder()
	e := b.Entity("BlogPost")

	name, ok := e.TableName()
	require.True(t, ok)
	assert.Equal(t, "blog_post", name)

	src, ok := e.TableNameSource()
	require.True(t, ok)
	assert.Equal(t, model.SourceConvention, src)
}

func TestPropertyAddedRewritesColumnName(t *testing.T) {
	b, _ := snakeBuilder()
	e := b.Entity("Blog")
	p := b.AddProperty(e, "CreatedAt")

	assert.Equal(t, "created_at", p.ColumnName(tableID(e)))
}

func TestKeyForeignKeyIndexAdded(t *testing.T) {
	b, _ := snakeBuilder()
	blog := b.Entity("Blog")
	post := b.Entity("Post")
	b.AddProperty(post, "Id")
	b.AddProperty(post, "BlogId")
	b.AddProperty(post, "Title")

	pk := b.AddKey(post, true, "Id")
	assert.Equal(t, "pk_post", pk.Name(tableID(post)))

	fk := b.AddForeignKey(post, blog, "BlogId")
	assert.Equal(t, "fk_post_blog_blog_id", fk.ConstraintName())

	ix := b.AddIndex(post, true, "Title")
	assert.Equal(t, "ix_post_title", ix.DatabaseName())
}

func TestTPHCollapse(t *testing.T) {
	b, _ := snakeBuilder()
	animal := b.Entity("Animal")
	dog := b.Entity("Dog")

	b.SetBaseType(dog, animal)

	// The derived type carries no table override of its own; both resolve
	// to the root's rewritten table.
	_, hasOwn := dog.TableNameSource()
	assert.False(t, hasOwn)

	name, ok := dog.TableName()
	require.True(t, ok)
	assert.Equal(t, "animal", name)
	rootName, _ := animal.TableName()
	assert.Equal(t, rootName, name)
}

func TestLeavingHierarchyReassignsTableName(t *testing.T) {
	b, _ := snakeBuilder()
	animal := b.Entity("Animal")
	dog := b.Entity("Dog")

	b.SetBaseType(dog, animal)
	b.SetBaseType(dog, nil)

	name, ok := dog.TableName()
	require.True(t, ok)
	assert.Equal(t, "dog", name)
	src, _ := dog.TableNameSource()
	assert.Equal(t, model.SourceConvention, src)
}

func TestTPTSplitClearsPrimaryKeyNames(t *testing.T) {
	b := pluralizingBuilder()
	animal := b.Entity("Animal")
	b.AddProperty(animal, "Id")
	pk := b.AddKey(animal, true, "Id")

	name, _ := animal.TableName()
	assert.Equal(t, "animals", name)
	assert.Equal(t, "pk_animals", pk.Name(tableID(animal)))

	dog := b.Entity("Dog")
	b.SetBaseType(dog, animal)

	// The user maps the derived type to its own table: the hierarchy
	// becomes TPT and the shared key's override must be cleared, not
	// rewritten, so each table resolves a distinct default.
	b.SetAnnotation(dog, model.AnnotationTableName, "dogs", model.SourceExplicit)

	assert.Equal(t, TPT, Classify(dog))
	_, hasOverride := pk.NameSource()
	assert.False(t, hasOverride)
	assert.Equal(t, "PK_animals", pk.Name(tableID(animal)))
	assert.Equal(t, "PK_dogs", pk.Name(tableID(dog)))
	assert.NotEqual(t, pk.Name(tableID(animal)), pk.Name(tableID(dog)))
}

func TestOwnershipEstablishesTableSplitting(t *testing.T) {
	b, _ := snakeBuilder()
	person := b.Entity("Person")
	address := b.Entity("Address")
	b.AddProperty(address, "Id")
	b.AddKey(address, true, "Id")
	street := b.AddProperty(address, "Street")

	assert.Equal(t, "street", street.ColumnName(tableID(address)))

	fk := b.AddForeignKey(address, person, "Id")
	b.SetOwnership(fk, true)

	// The owned entity loses its own table; its columns are namespaced by
	// the owner's rewritten short name inside the owner's table.
	_, hasOwn := address.TableNameSource()
	assert.False(t, hasOwn)
	name, ok := address.TableName()
	require.True(t, ok)
	assert.Equal(t, "person", name)
	assert.Equal(t, "person_street", street.ColumnName(tableID(address)))
}

func TestExplicitTableNameUndoesSplitting(t *testing.T) {
	b, _ := snakeBuilder()
	person := b.Entity("Person")
	address := b.Entity("Address")
	b.AddProperty(address, "Id")
	pk := b.AddKey(address, true, "Id")
	street := b.AddProperty(address, "Street")

	fk := b.AddForeignKey(address, person, "Id")
	b.SetOwnership(fk, true)
	require.Equal(t, "person_street", street.ColumnName(tableID(address)))

	b.SetAnnotation(address, model.AnnotationTableName, "addresses", model.SourceExplicit)

	assert.Equal(t, OwnedSeparateTable, Classify(address))
	assert.Equal(t, "street", street.ColumnName(tableID(address)))
	assert.Equal(t, "pk_addresses", pk.Name(tableID(address)))
}

func TestViewMappingClearsConventionTableName(t *testing.T) {
	b, _ := snakeBuilder()
	e := b.Entity("DailySale")
	b.SetAnnotation(e, model.AnnotationViewName, "daily_sales", model.SourceExplicit)
	require.Equal(t, MappedToStoreObject, Classify(e))

	_, hasTable := e.TableNameSource()
	assert.False(t, hasTable)
	_, ok := e.StoreObject(model.StoreKindTable)
	assert.False(t, ok)

	view, ok := e.StoreObject(model.StoreKindView)
	require.True(t, ok)
	assert.Equal(t, "daily_sales", view.Name)
}

func TestExplicitNamesAreNeverTouched(t *testing.T) {
	b, _ := snakeBuilder()
	e := b.Entity("Blog")
	b.SetAnnotation(e, model.AnnotationTableName, "Weblog", model.SourceExplicit)
	p := b.AddProperty(e, "CreatedAt")
	require.True(t, p.SetColumnName("WhenMade", model.SourceExplicit))

	// Structural churn after the explicit settings.
	other := b.Entity("Other")
	b.SetBaseType(e, other)
	b.SetBaseType(e, nil)
	b.AddKey(e, true, "CreatedAt")
	b.Finalize()

	name, _ := e.TableName()
	assert.Equal(t, "Weblog", name)
	assert.Equal(t, "WhenMade", p.ColumnName(tableID(e)))
}

func TestTableRenameRewritesDependentNames(t *testing.T) {
	b, _ := snakeBuilder()
	blog := b.Entity("Blog")
	post := b.Entity("Post")
	b.AddProperty(post, "Id")
	pk := b.AddKey(post, true, "Id")
	b.AddProperty(post, "BlogId")
	fk := b.AddForeignKey(post, blog, "BlogId")
	ix := b.AddIndex(post, false, "BlogId")

	b.SetAnnotation(post, model.AnnotationTableName, "posts", model.SourceExplicit)

	assert.Equal(t, "pk_posts", pk.Name(tableID(post)))
	assert.Equal(t, "fk_posts_blog_blog_id", fk.ConstraintName())
	assert.Equal(t, "ix_posts_blog_id", ix.DatabaseName())
}

func TestFinalizationRewritesDisambiguationPrefixes(t *testing.T) {
	b, _ := snakeBuilder()
	company := b.Entity("Company")
	b.AddProperty(company, "Id")
	b.AddKey(company, true, "Id")

	employee := b.Entity("Employee")
	manager := b.Entity("Manager")
	b.SetBaseType(employee, company)
	b.SetBaseType(manager, company)
	empName := b.AddProperty(employee, "Name")
	mgrName := b.AddProperty(manager, "Name")

	require.Equal(t, "name", empName.ColumnName(tableID(employee)))
	require.Equal(t, "name", mgrName.ColumnName(tableID(manager)))

	b.Finalize()

	// The disambiguation pass prefixed the raw short name; the finalizer
	// rewrites the prefix and keeps the suffix.
	assert.Equal(t, "employee_name", empName.ColumnName(tableID(employee)))
	assert.Equal(t, "manager_name", mgrName.ColumnName(tableID(manager)))
}

func TestHandlersAreIdempotent(t *testing.T) {
	b, nr := snakeBuilder()
	person := b.Entity("Person")
	address := b.Entity("Address")
	b.AddProperty(address, "Id")
	b.AddKey(address, true, "Id")
	street := b.AddProperty(address, "Street")
	fk := b.AddForeignKey(address, person, "Id")
	b.SetOwnership(fk, true)

	id := tableID(address)
	first := street.ColumnName(id)

	// Re-deliver the same events straight at the engine.
	nr.ProcessEntityAdded(person)
	nr.ProcessPropertyAdded(street)
	nr.ProcessForeignKeyOwnershipChanged(fk)

	assert.Equal(t, first, street.ColumnName(id))
	assert.Equal(t, "person_street", street.ColumnName(id))
	name, _ := address.TableName()
	assert.Equal(t, "person", name)
}

func TestDefaultPurity(t *testing.T) {
	// After every handler, each convention-sourced name equals the rewrite
	// of its current default: never the rewrite of a rewritten value.
	b, _ := snakeBuilder()
	blog := b.Entity("Blog")
	p := b.AddProperty(blog, "AuthorName")
	b.SetAnnotation(blog, model.AnnotationTableName, "weblogs", model.SourceExplicit)

	id := tableID(blog)
	assert.Equal(t, rewrite.SnakeCase(p.DefaultColumnName(id)), p.ColumnName(id))
}

func TestKeyAddedWithoutTableIsSkipped(t *testing.T) {
	b, _ := snakeBuilder()
	e := b.Entity("Snapshot")
	b.SetAnnotation(e, model.AnnotationSQLQuery, "SELECT 1", model.SourceExplicit)
	b.AddProperty(e, "Id")
	pk := b.AddKey(e, true, "Id")

	// No resolvable table: nothing to rewrite, no override written.
	_, has := pk.NameSource()
	assert.False(t, has)
}
