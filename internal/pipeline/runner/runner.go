// Package runner orchestrates full pipeline executions: extract raw
// records, process them concurrently, load the survivors.
package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/wanderwiseai/travel-etl/app/observability/metrics"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/extractor"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/loader"
	"github.com/wanderwiseai/travel-etl/internal/pipeline/processor"
	"github.com/wanderwiseai/travel-etl/internal/types"
)

// Options bound the runner's resource use.
type Options struct {
	// Workers caps how many records are processed concurrently.
	Workers int
	// BatchSize is handed to the loader for insert batching.
	BatchSize int
}

// Stats summarizes one pipeline run.
type Stats struct {
	Extracted int
	Processed int
	Dropped   int
	Duration  time.Duration
}

type Runner struct {
	logger     *slog.Logger
	processor  *processor.Processor
	extractors []extractor.Extractor
	repository loader.Repository
	opts       Options
}

func New(proc *processor.Processor, extractors []extractor.Extractor, repository loader.Repository, opts Options, logger *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	metrics.InitAppMetrics()
	return &Runner{
		logger:     logger,
		processor:  proc,
		extractors: extractors,
		repository: repository,
		opts:       opts,
	}
}

// Run executes the full pipeline once. Extractor failures and dropped
// records are logged and counted but never abort the run; only context
// cancellation stops it early.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	ctx, span := otel.Tracer("Runner").Start(ctx, "Run")
	defer span.End()

	start := time.Now()
	m := metrics.Get()

	raw := r.extract(ctx)
	m.RecordsExtractedTotal.Add(ctx, int64(len(raw)))
	r.logger.InfoContext(ctx, "Extraction completed", slog.Int("records", len(raw)))

	processed, err := r.process(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Processing interrupted")
		return nil, err
	}

	if r.repository != nil && len(processed) > 0 {
		if err := r.repository.BulkInsert(ctx, processed, r.opts.BatchSize); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Loading failed")
			return nil, err
		}
		m.RecordsLoadedTotal.Add(ctx, int64(len(processed)))
	}

	stats := &Stats{
		Extracted: len(raw),
		Processed: len(processed),
		Dropped:   len(raw) - len(processed),
		Duration:  time.Since(start),
	}
	m.PipelineDurationSeconds.Record(ctx, stats.Duration.Seconds())

	span.SetAttributes(
		attribute.Int("records.extracted", stats.Extracted),
		attribute.Int("records.processed", stats.Processed),
		attribute.Int("records.dropped", stats.Dropped),
	)
	span.SetStatus(codes.Ok, "Pipeline run completed")

	r.logger.InfoContext(ctx, "Pipeline run completed",
		slog.Int("extracted", stats.Extracted),
		slog.Int("processed", stats.Processed),
		slog.Int("dropped", stats.Dropped),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

func (r *Runner) extract(ctx context.Context) []types.RawRecord {
	var all []types.RawRecord
	for _, ext := range r.extractors {
		records, err := ext.Extract(ctx)
		if err != nil {
			r.logger.ErrorContext(ctx, "Extractor failed, continuing with other sources",
				slog.Any("error", err),
				slog.String("extractor", ext.Name()))
			continue
		}
		r.logger.DebugContext(ctx, "Extractor finished",
			slog.String("extractor", ext.Name()),
			slog.Int("records", len(records)))
		all = append(all, records...)
	}
	return all
}

// process runs records through the processor with bounded concurrency.
// Records are independent: a dropped record never affects its siblings,
// and only context cancellation propagates as an error.
func (r *Runner) process(ctx context.Context, raw []types.RawRecord) ([]*types.ProcessedRecord, error) {
	m := metrics.Get()

	var (
		mu        sync.Mutex
		processed []*types.ProcessedRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for _, item := range raw {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			recStart := time.Now()
			rec := r.processor.ProcessItem(gctx, item)
			m.ProcessDurationSeconds.Record(gctx, time.Since(recStart).Seconds())

			if rec == nil {
				m.RecordsDroppedTotal.Add(gctx, 1)
				return nil
			}
			m.RecordsProcessedTotal.Add(gctx, 1)

			mu.Lock()
			processed = append(processed, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return processed, nil
}
