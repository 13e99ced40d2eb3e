package processor

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// MockEnricher is a mock implementation of the Enricher interface
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, rec *types.ProcessedRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, Validate(types.RawRecord{"title": "Grand Hotel", "source_type": "api"}))
	})

	t.Run("MissingTitle", func(t *testing.T) {
		assert.False(t, Validate(types.RawRecord{"source_type": "api"}))
	})

	t.Run("TitleNotAString", func(t *testing.T) {
		assert.False(t, Validate(types.RawRecord{"title": 42, "source_type": "api"}))
	})

	t.Run("TitleTooShortAfterTrimming", func(t *testing.T) {
		assert.False(t, Validate(types.RawRecord{"title": "  ab  ", "source_type": "api"}))
	})

	t.Run("MissingSourceType", func(t *testing.T) {
		assert.False(t, Validate(types.RawRecord{"title": "Grand Hotel"}))
	})

	t.Run("SourceTypeNotAString", func(t *testing.T) {
		assert.False(t, Validate(types.RawRecord{"title": "Grand Hotel", "source_type": 1}))
	})
}

func TestProcessItem(t *testing.T) {
	logger := slog.Default()

	raw := types.RawRecord{
		"title":       "  <b>Great Hotel</b>  ",
		"source_type": "api",
		"description": "A wonderful place to stay",
		"categories":  []any{"lodging", "dining"},
		"rating":      "4.5 stars",
		"price_range": "luxury",
		"address":     "123 Main St",
	}

	t.Run("Success", func(t *testing.T) {
		mockEnricher := new(MockEnricher)
		mockEnricher.On("Enrich", mock.Anything, mock.AnythingOfType("*types.ProcessedRecord")).Return(nil).Once()

		p := New(mockEnricher, logger)
		rec := p.ProcessItem(context.Background(), raw)

		require.NotNil(t, rec)
		assert.Equal(t, "Great Hotel", rec.Title)
		assert.Equal(t, types.SourceAPI, rec.SourceType)
		assert.Equal(t, "A wonderful place to stay", rec.Description)
		assert.Equal(t, []string{"hotel", "restaurant"}, rec.Categories)
		require.NotNil(t, rec.Rating)
		assert.Equal(t, 4.5, *rec.Rating)
		assert.Equal(t, "$$$", rec.PriceRange)
		assert.Contains(t, rec.ProcessedText, "Great Hotel")
		assert.Equal(t, "en", rec.Language)
		assert.False(t, rec.ProcessedAt.IsZero())
		mockEnricher.AssertExpectations(t)
	})

	t.Run("ValidationFailureSkipsEnrichment", func(t *testing.T) {
		mockEnricher := new(MockEnricher)

		p := New(mockEnricher, logger)
		rec := p.ProcessItem(context.Background(), types.RawRecord{
			"description": "Missing title and source_type",
		})

		assert.Nil(t, rec)
		mockEnricher.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
	})

	t.Run("EnrichmentFailureDropsRecord", func(t *testing.T) {
		mockEnricher := new(MockEnricher)
		mockEnricher.On("Enrich", mock.Anything, mock.AnythingOfType("*types.ProcessedRecord")).
			Return(errors.New("embedding service unavailable")).Once()

		p := New(mockEnricher, logger)
		rec := p.ProcessItem(context.Background(), raw)

		assert.Nil(t, rec)
		mockEnricher.AssertExpectations(t)
	})

	t.Run("FieldAliasesRewritten", func(t *testing.T) {
		p := New(NopEnricher{}, logger)
		rec := p.ProcessItem(context.Background(), types.RawRecord{
			"title":       "Seaside Inn",
			"source_type": "scraping",
			"summary":     "Small inn by the sea",
			"link":        "https://example.com/seaside",
		})

		require.NotNil(t, rec)
		assert.Equal(t, "Small inn by the sea", rec.Description)
		assert.Equal(t, "https://example.com/seaside", rec.SourceURL)
	})

	t.Run("DefaultsForAbsentFields", func(t *testing.T) {
		p := New(NopEnricher{}, logger)
		rec := p.ProcessItem(context.Background(), types.RawRecord{
			"title":       "Bare Minimum",
			"source_type": "manual",
		})

		require.NotNil(t, rec)
		assert.Nil(t, rec.Rating)
		assert.Equal(t, "$$", rec.PriceRange)
		assert.Empty(t, rec.Categories)
		assert.Equal(t, "Bare Minimum", rec.ProcessedText)
		assert.Equal(t, "en", rec.Language)
	})

	t.Run("LocationFromNestedMapping", func(t *testing.T) {
		p := New(NopEnricher{}, logger)
		rec := p.ProcessItem(context.Background(), types.RawRecord{
			"title":       "Harbor View",
			"source_type": "api",
			"location":    map[string]any{"lat": 32.08, "lng": 34.78},
		})

		require.NotNil(t, rec)
		require.NotNil(t, rec.Location)
		assert.Equal(t, 32.08, rec.Location.Lat)
		assert.Equal(t, 34.78, rec.Location.Lng)
	})
}
