package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// Geocoder resolves street addresses into coordinates via the Nominatim
// search API. Results are cached because extractors hand over many records
// for the same venue. Geocoding is best-effort: a lookup failure leaves the
// record without coordinates instead of failing it, unlike embedding.
type Geocoder struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	cache      *gocache.Cache
	logger     *slog.Logger
}

func NewGeocoder(userAgent string, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    nominatimBaseURL,
		userAgent:  userAgent,
		// Nominatim's usage policy allows at most one request per second.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		cache:   gocache.New(24*time.Hour, time.Hour),
		logger:  logger,
	}
}

// Enrich fills in coordinates when the record has an address but no
// location yet. Lookup errors are logged and swallowed.
func (g *Geocoder) Enrich(ctx context.Context, rec *types.ProcessedRecord) error {
	if rec.Address == "" || rec.Location != nil {
		return nil
	}

	loc, err := g.Geocode(ctx, rec.Address)
	if err != nil {
		g.logger.WarnContext(ctx, "Geocoding failed, keeping record without coordinates",
			slog.Any("error", err),
			slog.String("address", rec.Address))
		return nil
	}
	rec.Location = loc
	return nil
}

// Geocode resolves an address to coordinates. A nil Location with nil error
// never happens: misses are reported as errors.
func (g *Geocoder) Geocode(ctx context.Context, address string) (*types.Location, error) {
	ctx, span := otel.Tracer("Geocoder").Start(ctx, "Geocode")
	defer span.End()

	if cached, ok := g.cache.Get(address); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		loc := cached.(types.Location)
		return &loc, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocode request failed")
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocode request returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unexpected geocode status")
		return nil, err
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocode result for address %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	loc := types.Location{Lat: lat, Lng: lng}
	g.cache.Set(address, loc, gocache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Address geocoded")
	return &loc, nil
}
