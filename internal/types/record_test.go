package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawRecordAccessors(t *testing.T) {
	raw := RawRecord{
		"title":      "Grand Hotel",
		"rating":     4.5,
		"categories": []any{"hotel", "spa"},
		"amenities":  []string{"WiFi", "Pool"},
		"nothing":    nil,
	}

	t.Run("GetString", func(t *testing.T) {
		assert.Equal(t, "Grand Hotel", raw.GetString("title"))
		assert.Equal(t, "", raw.GetString("rating"), "non-string value")
		assert.Equal(t, "", raw.GetString("missing"))
	})

	t.Run("GetSlice", func(t *testing.T) {
		assert.Equal(t, []any{"hotel", "spa"}, raw.GetSlice("categories"))
		assert.Equal(t, []any{"WiFi", "Pool"}, raw.GetSlice("amenities"), "string slices are widened")
		assert.Nil(t, raw.GetSlice("title"))
		assert.Nil(t, raw.GetSlice("missing"))
	})

	t.Run("Get treats nil values as absent", func(t *testing.T) {
		v, ok := raw.Get("rating")
		assert.True(t, ok)
		assert.Equal(t, 4.5, v)

		_, ok = raw.Get("nothing")
		assert.False(t, ok)

		_, ok = raw.Get("missing")
		assert.False(t, ok)
	})

	t.Run("Has", func(t *testing.T) {
		assert.True(t, raw.Has("title"))
		assert.False(t, raw.Has("nothing"))
		assert.False(t, raw.Has("missing"))
	})
}
