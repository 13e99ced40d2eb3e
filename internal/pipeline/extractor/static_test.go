package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticExtractor(t *testing.T) {
	t.Run("Produces three records per destination", func(t *testing.T) {
		ext := NewStaticExtractor([]string{"Tokyo", "Lisbon"})

		records, err := ext.Extract(context.Background())

		assert.NoError(t, err)
		assert.Len(t, records, 6)
		assert.Equal(t, "Grand Hotel Tokyo", records[0].GetString("title"))
		assert.Equal(t, "api", records[0].GetString("source_type"))
		assert.Equal(t, "Old Town Walking Tour Lisbon", records[5].GetString("title"))
		assert.Equal(t, "scraping", records[5].GetString("source_type"))
	})

	t.Run("No destinations yields no records", func(t *testing.T) {
		ext := NewStaticExtractor(nil)

		records, err := ext.Extract(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Cancelled context stops extraction", func(t *testing.T) {
		ext := NewStaticExtractor([]string{"Tokyo"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ext.Extract(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
