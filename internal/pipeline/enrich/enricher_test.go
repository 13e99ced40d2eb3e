package enrich

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

type stubEnricher struct {
	called int
	err    error
}

func (s *stubEnricher) Enrich(ctx context.Context, rec *types.ProcessedRecord) error {
	s.called++
	return s.err
}

func TestChain(t *testing.T) {
	t.Run("RunsAllEnrichers", func(t *testing.T) {
		first := &stubEnricher{}
		second := &stubEnricher{}
		chain := Chain{first, second}

		err := chain.Enrich(context.Background(), &types.ProcessedRecord{})

		assert.NoError(t, err)
		assert.Equal(t, 1, first.called)
		assert.Equal(t, 1, second.called)
	})

	t.Run("StopsAtFirstError", func(t *testing.T) {
		first := &stubEnricher{err: errors.New("embed failed")}
		second := &stubEnricher{}
		chain := Chain{first, second}

		err := chain.Enrich(context.Background(), &types.ProcessedRecord{})

		assert.Error(t, err)
		assert.Equal(t, 0, second.called)
	})
}

func TestGeocoder(t *testing.T) {
	logger := slog.Default()

	t.Run("FillsLocationFromResponse", func(t *testing.T) {
		var requests int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			assert.Equal(t, "123 Main St", r.URL.Query().Get("q"))
			w.Write([]byte(`[{"lat":"40.7128","lon":"-74.0060"}]`))
		}))
		defer srv.Close()

		g := NewGeocoder("travel-etl-test", logger)
		g.baseURL = srv.URL

		rec := &types.ProcessedRecord{Address: "123 Main St"}
		err := g.Enrich(context.Background(), rec)

		require.NoError(t, err)
		require.NotNil(t, rec.Location)
		assert.Equal(t, 40.7128, rec.Location.Lat)
		assert.Equal(t, -74.0060, rec.Location.Lng)

		// Second record with the same address is served from cache.
		rec2 := &types.ProcessedRecord{Address: "123 Main St"}
		require.NoError(t, g.Enrich(context.Background(), rec2))
		require.NotNil(t, rec2.Location)
		assert.Equal(t, 1, requests)
	})

	t.Run("LookupFailureIsSoft", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		g := NewGeocoder("travel-etl-test", logger)
		g.baseURL = srv.URL

		rec := &types.ProcessedRecord{Address: "nowhere"}
		err := g.Enrich(context.Background(), rec)

		assert.NoError(t, err)
		assert.Nil(t, rec.Location)
	})

	t.Run("SkipsRecordsWithCoordinates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("geocoder should not be called")
		}))
		defer srv.Close()

		g := NewGeocoder("travel-etl-test", logger)
		g.baseURL = srv.URL

		rec := &types.ProcessedRecord{
			Address:  "123 Main St",
			Location: &types.Location{Lat: 1, Lng: 2},
		}
		require.NoError(t, g.Enrich(context.Background(), rec))
	})
}
