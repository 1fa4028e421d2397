package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schema-naming/internal/model"
)

func TestClassify(t *testing.T) {
	t.Run("standalone", func(t *testing.T) {
		b := model.NewBuilder(nil)
		assert.Equal(t, StandaloneTable, Classify(b.Entity("Blog")))
	})

	t.Run("tph", func(t *testing.T) {
		b := model.NewBuilder(nil)
		animal := b.Entity("Animal")
		dog := b.Entity("Dog")
		b.SetBaseType(dog, animal)

		assert.Equal(t, TPHRoot, Classify(animal))
		assert.Equal(t, TPHDerived, Classify(dog))
	})

	t.Run("tpt flips with one member's table", func(t *testing.T) {
		b := model.NewBuilder(nil)
		animal := b.Entity("Animal")
		dog := b.Entity("Dog")
		cat := b.Entity("Cat")
		b.SetBaseType(dog, animal)
		b.SetBaseType(cat, animal)

		assert.Equal(t, TPHDerived, Classify(cat))

		b.SetAnnotation(dog, model.AnnotationTableName, "dogs", model.SourceExplicit)

		// One diverging table reclassifies the whole hierarchy.
		assert.Equal(t, TPT, Classify(animal))
		assert.Equal(t, TPT, Classify(dog))
		assert.Equal(t, TPT, Classify(cat))

		// And removing it flips the hierarchy back: nothing is cached.
		b.RemoveAnnotation(dog, model.AnnotationTableName, model.SourceExplicit)
		assert.Equal(t, TPHRoot, Classify(animal))
		assert.Equal(t, TPHDerived, Classify(dog))
	})

	t.Run("ownership", func(t *testing.T) {
		b := model.NewBuilder(nil)
		person := b.Entity("Person")
		address := b.Entity("Address")
		fk := b.AddForeignKey(address, person, "PersonId")
		b.SetOwnership(fk, true)

		assert.Equal(t, OwnedSplitTable, Classify(address))

		b.SetAnnotation(address, model.AnnotationTableName, "addresses", model.SourceExplicit)
		assert.Equal(t, OwnedSeparateTable, Classify(address))
	})

	t.Run("collection ownership keeps a separate table", func(t *testing.T) {
		b := model.NewBuilder(nil)
		person := b.Entity("Person")
		phone := b.Entity("Phone")
		fk := b.AddForeignKey(phone, person, "PersonId")
		b.SetNavigationCollection(fk, true)
		b.SetOwnership(fk, true)

		assert.Equal(t, OwnedSeparateTable, Classify(phone))
	})

	t.Run("alternate store object", func(t *testing.T) {
		b := model.NewBuilder(nil)
		sales := b.Entity("DailySale")
		b.SetAnnotation(sales, model.AnnotationViewName, "daily_sales", model.SourceExplicit)
		assert.Equal(t, MappedToStoreObject, Classify(sales))

		fn := b.Entity("TopSeller")
		b.SetAnnotation(fn, model.AnnotationFunctionName, "top_sellers", model.SourceExplicit)
		assert.Equal(t, MappedToStoreObject, Classify(fn))

		// An explicit table name beats the alternate mapping.
		b.SetAnnotation(sales, model.AnnotationTableName, "daily_sales_rollup", model.SourceExplicit)
		assert.Equal(t, StandaloneTable, Classify(sales))
	})
}
