package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(id int64) *int64 { return &id }

func TestDiffVariantsAllNew(t *testing.T) {
	diff := DiffVariants(nil, []VariantInput{
		{Name: "Pollo"},
		{Name: "Chancho"},
	})

	assert.Empty(t, diff.Delete)
	assert.Empty(t, diff.Update)
	assert.Len(t, diff.Insert, 2)
}

func TestDiffVariantsDeleteMissing(t *testing.T) {
	diff := DiffVariants([]int64{1, 2, 3}, []VariantInput{
		{ID: ptr(2), Name: "Pollo"},
	})

	assert.ElementsMatch(t, []int64{1, 3}, diff.Delete)
	assert.Len(t, diff.Update, 1)
	assert.Equal(t, int64(2), *diff.Update[0].ID)
	assert.Empty(t, diff.Insert)
}

func TestDiffVariantsMixed(t *testing.T) {
	diff := DiffVariants([]int64{10, 20}, []VariantInput{
		{ID: ptr(10), Name: "Naranja", ExtraPrice: 0.5},
		{Name: "Fresa"},
	})

	assert.Equal(t, []int64{20}, diff.Delete)
	assert.Len(t, diff.Update, 1)
	assert.Len(t, diff.Insert, 1)
	assert.Equal(t, "Fresa", diff.Insert[0].Name)
}

func TestDiffVariantsEmptyIncomingDeletesAll(t *testing.T) {
	diff := DiffVariants([]int64{1, 2}, nil)

	assert.ElementsMatch(t, []int64{1, 2}, diff.Delete)
	assert.Empty(t, diff.Update)
	assert.Empty(t, diff.Insert)
}

func TestDiffVariantsUnknownIDStaysInUpdateSet(t *testing.T) {
	// An id the product no longer owns is not silently recreated; the
	// store reports it as not found when the update runs.
	diff := DiffVariants([]int64{1}, []VariantInput{
		{ID: ptr(99), Name: "Queso"},
	})

	assert.Equal(t, []int64{1}, diff.Delete)
	assert.Len(t, diff.Update, 1)
	assert.Equal(t, int64(99), *diff.Update[0].ID)
	assert.Empty(t, diff.Insert)
}

func TestDiffVariantsUntouchedRowsKeepIdentity(t *testing.T) {
	diff := DiffVariants([]int64{5}, []VariantInput{
		{ID: ptr(5), Name: "Tradicional"},
	})

	assert.Empty(t, diff.Delete, "a resubmitted variant must not be replaced")
	assert.Empty(t, diff.Insert)
	assert.Len(t, diff.Update, 1)
}
