package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardizeCategories(t *testing.T) {
	t.Run("MapsSynonymsAndDeduplicates", func(t *testing.T) {
		got := StandardizeCategories([]any{"hotel", "lodging", "accommodation"})
		assert.Equal(t, []string{"hotel"}, got)
	})

	t.Run("PreservesFirstOccurrenceOrder", func(t *testing.T) {
		got := StandardizeCategories([]any{"dining", "sightseeing", "food"})
		assert.Equal(t, []string{"restaurant", "attraction"}, got)
	})

	t.Run("UnknownTagsPassThroughLowercased", func(t *testing.T) {
		got := StandardizeCategories([]any{"  Beach ", "NIGHTLIFE"})
		assert.Equal(t, []string{"beach", "nightlife"}, got)
	})

	t.Run("NonSequenceInput", func(t *testing.T) {
		assert.Empty(t, StandardizeCategories("not-an-array"))
		assert.Empty(t, StandardizeCategories(nil))
		assert.Empty(t, StandardizeCategories(42))
	})

	t.Run("SkipsNonStringElements", func(t *testing.T) {
		got := StandardizeCategories([]any{"tour", 7, nil, "entertainment"})
		assert.Equal(t, []string{"activity"}, got)
	})

	t.Run("StringSliceInput", func(t *testing.T) {
		got := StandardizeCategories([]string{"lodging", "dining"})
		assert.Equal(t, []string{"hotel", "restaurant"}, got)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, StandardizeCategories([]any{}))
	})
}
