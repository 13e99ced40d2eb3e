package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderwiseai/travel-etl/app/observability/metrics"
	"github.com/wanderwiseai/travel-etl/internal/types"
)

// Enricher adds supplementary fields not derivable from the raw record
// alone, typically by calling an external service (embeddings, geocoding).
// An error from Enrich drops the whole record: no partially enriched record
// is ever surfaced.
type Enricher interface {
	Enrich(ctx context.Context, rec *types.ProcessedRecord) error
}

// NopEnricher satisfies Enricher without doing anything. Useful for dry
// runs and tests.
type NopEnricher struct{}

func (NopEnricher) Enrich(context.Context, *types.ProcessedRecord) error { return nil }

// Processor turns heterogeneous raw records into consistent, validated,
// search-ready ProcessedRecords. Records are independent: Processor holds
// no per-record state and is safe for concurrent use.
type Processor struct {
	logger   *slog.Logger
	enricher Enricher
}

func New(enricher Enricher, logger *slog.Logger) *Processor {
	if enricher == nil {
		enricher = NopEnricher{}
	}
	metrics.InitAppMetrics()
	return &Processor{
		logger:   logger,
		enricher: enricher,
	}
}

// ProcessItem runs a single raw record through the full pipeline:
// validate, clean, normalize, compose, detect language, enrich. It returns
// nil when the record fails validation or enrichment errors; it never
// panics and never propagates an error, so one bad record cannot abort a
// batch.
func (p *Processor) ProcessItem(ctx context.Context, raw types.RawRecord) *types.ProcessedRecord {
	ctx, span := otel.Tracer("Processor").Start(ctx, "ProcessItem", trace.WithAttributes(
		attribute.String("source_type", raw.GetString("source_type")),
	))
	defer span.End()

	if !Validate(raw) {
		p.logger.WarnContext(ctx, "Dropping record that failed validation",
			slog.String("title", raw.GetString("title")),
			slog.String("source_type", raw.GetString("source_type")))
		span.SetStatus(codes.Ok, "Record rejected by validation")
		return nil
	}

	raw = CanonicalFieldNames(raw)

	rec := &types.ProcessedRecord{
		ID:          uuid.New(),
		SourceType:  types.SourceType(raw.GetString("source_type")),
		SourceName:  raw.GetString("source_name"),
		SourceURL:   raw.GetString("source_url"),
		Title:       CleanText(raw["title"]),
		Description: CleanText(raw["description"]),
		Address:     CleanText(raw["address"]),
		Destination: raw.GetString("destination"),
		Origin:      raw.GetString("origin"),
		Categories:  StandardizeCategories(raw["categories"]),
		Amenities:   stringSlice(raw.GetSlice("amenities")),
		Images:      stringSlice(raw.GetSlice("images")),
		Rating:      CleanRating(raw["rating"]),
		PriceRange:  StandardizePriceRange(raw["price_range"]),
		Location:    parseLocation(raw),
	}

	rec.ProcessedText = ComposeText(rec)
	rec.Language = DetectLanguage(rec.ProcessedText)

	if err := p.enricher.Enrich(ctx, rec); err != nil {
		metrics.Get().EnrichmentErrorsTotal.Add(ctx, 1)
		p.logger.ErrorContext(ctx, "Dropping record after enrichment failure",
			slog.Any("error", err),
			slog.String("title", rec.Title))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Enrichment failed")
		return nil
	}

	rec.ProcessedAt = time.Now()
	span.SetStatus(codes.Ok, "Record processed")
	return rec
}

func stringSlice(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseLocation reads coordinates either from a nested location mapping or
// from top-level latitude/longitude fields.
func parseLocation(raw types.RawRecord) *types.Location {
	if loc, ok := raw["location"].(map[string]any); ok {
		lat, latOK := toFloat(loc["lat"])
		lng, lngOK := toFloat(loc["lng"])
		if latOK && lngOK {
			return &types.Location{Lat: lat, Lng: lng}
		}
	}
	lat, latOK := toFloat(raw["latitude"])
	lng, lngOK := toFloat(raw["longitude"])
	if latOK && lngOK {
		return &types.Location{Lat: lat, Lng: lng}
	}
	return nil
}
