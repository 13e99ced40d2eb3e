package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the pipeline's metric instruments.
type AppMetrics struct {
	RecordsExtractedTotal   metric.Int64Counter
	RecordsProcessedTotal   metric.Int64Counter
	RecordsDroppedTotal     metric.Int64Counter
	EnrichmentErrorsTotal   metric.Int64Counter
	RecordsLoadedTotal      metric.Int64Counter
	ProcessDurationSeconds  metric.Float64Histogram
	PipelineDurationSeconds metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("travel-etl")
		var err error
		m := &AppMetrics{}

		m.RecordsExtractedTotal, err = meter.Int64Counter(
			"records_extracted_total",
			metric.WithDescription("Total number of raw records handed over by extractors"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create records_extracted_total: %v", err)
		}

		m.RecordsProcessedTotal, err = meter.Int64Counter(
			"records_processed_total",
			metric.WithDescription("Total number of records that completed processing"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create records_processed_total: %v", err)
		}

		m.RecordsDroppedTotal, err = meter.Int64Counter(
			"records_dropped_total",
			metric.WithDescription("Total number of records dropped by validation or enrichment"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create records_dropped_total: %v", err)
		}

		m.EnrichmentErrorsTotal, err = meter.Int64Counter(
			"enrichment_errors_total",
			metric.WithDescription("Total number of enrichment call failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_errors_total: %v", err)
		}

		m.RecordsLoadedTotal, err = meter.Int64Counter(
			"records_loaded_total",
			metric.WithDescription("Total number of records persisted by the loader"),
			metric.WithUnit("{record}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create records_loaded_total: %v", err)
		}

		m.ProcessDurationSeconds, err = meter.Float64Histogram(
			"process_duration_seconds",
			metric.WithDescription("Duration of per-record processing in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create process_duration_seconds: %v", err)
		}

		m.PipelineDurationSeconds, err = meter.Float64Histogram(
			"pipeline_duration_seconds",
			metric.WithDescription("Duration of full pipeline runs in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create pipeline_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
