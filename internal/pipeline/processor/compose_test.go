package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

func TestComposeText(t *testing.T) {
	t.Run("TitleOnly", func(t *testing.T) {
		rec := &types.ProcessedRecord{Title: "Hotel Only"}
		assert.Equal(t, "Hotel Only", ComposeText(rec))
	})

	t.Run("AllFields", func(t *testing.T) {
		rec := &types.ProcessedRecord{
			Title:       "Grand Hotel",
			Description: "A wonderful place",
			Categories:  []string{"hotel", "restaurant"},
			Address:     "123 Main St",
			Destination: "Paris",
			Amenities:   []string{"WiFi", "Pool"},
		}
		assert.Equal(t, "Grand Hotel A wonderful place hotel restaurant 123 Main St Paris WiFi Pool", ComposeText(rec))
	})

	t.Run("SkipsEmptyFields", func(t *testing.T) {
		rec := &types.ProcessedRecord{
			Title:   "Grand Hotel",
			Address: "123 Main St",
		}
		assert.Equal(t, "Grand Hotel 123 Main St", ComposeText(rec))
	})
}

func TestDetectLanguage(t *testing.T) {
	t.Run("EmptyDefaultsToEnglish", func(t *testing.T) {
		assert.Equal(t, "en", DetectLanguage(""))
	})

	t.Run("English", func(t *testing.T) {
		assert.Equal(t, "en", DetectLanguage("Great Hotel in Paris"))
	})

	t.Run("Hebrew", func(t *testing.T) {
		assert.Equal(t, "he", DetectLanguage("מלון נהדר בתל אביב"))
	})

	t.Run("MixedBelowThreshold", func(t *testing.T) {
		// Two Hebrew characters in a long English sentence stay English.
		assert.Equal(t, "en", DetectLanguage("A lovely stay at the מל hotel near the old city center"))
	})
}
