// Package loader persists processed records into Postgres.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// Downstream storage caps, matching the travel_content column sizes.
const (
	maxTitleLength         = 500
	maxDescriptionLength   = 2000
	maxProcessedTextLength = 5000
)

// PGXPool is the subset of pgxpool.Pool the repository uses. Narrowing the
// dependency to an interface lets tests substitute pgxmock.
type PGXPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresRepository)(nil)

// Repository defines the persistence contract for processed records.
type Repository interface {
	BulkInsert(ctx context.Context, records []*types.ProcessedRecord, batchSize int) error
	IsDuplicate(ctx context.Context, rec *types.ProcessedRecord) (bool, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
	GetStats(ctx context.Context) (*types.ContentStats, error)
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool PGXPool
}

func NewPostgresRepository(pgpool PGXPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const insertContentQuery = `
        INSERT INTO travel_content (
            id, source_type, source_name, source_url, title, description,
            address, latitude, longitude, rating, price_range, categories,
            amenities, images, processed_text, embedding, language, processed_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
        )
    `

// BulkInsert persists records in transactional batches. When a batch fails
// it falls back to inserting that batch's records one by one, skipping
// duplicates, so a single bad record cannot sink its whole batch.
func (r *PostgresRepository) BulkInsert(ctx context.Context, records []*types.ProcessedRecord, batchSize int) error {
	ctx, span := otel.Tracer("ContentRepository").Start(ctx, "BulkInsert", trace.WithAttributes(
		attribute.Int("records.count", len(records)),
	))
	defer span.End()

	if len(records) == 0 {
		r.logger.InfoContext(ctx, "No records to insert")
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		if err := r.insertBatch(ctx, batch); err != nil {
			r.logger.WarnContext(ctx, "Batch insert failed, retrying records individually",
				slog.Any("error", err),
				slog.Int("batch_size", len(batch)))
			r.insertIndividually(ctx, batch)
		}
	}

	span.SetStatus(codes.Ok, "Bulk insert completed")
	return nil
}

func (r *PostgresRepository) insertBatch(ctx context.Context, batch []*types.ProcessedRecord) error {
	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range batch {
		if _, err := tx.Exec(ctx, insertContentQuery, insertArgs(rec)...); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", rec.Title, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertIndividually retries a failed batch record by record with a
// duplicate check, logging and skipping the ones that still fail.
func (r *PostgresRepository) insertIndividually(ctx context.Context, batch []*types.ProcessedRecord) {
	for _, rec := range batch {
		dup, err := r.IsDuplicate(ctx, rec)
		if err != nil {
			r.logger.ErrorContext(ctx, "Duplicate check failed",
				slog.Any("error", err),
				slog.String("title", rec.Title))
			continue
		}
		if dup {
			r.logger.DebugContext(ctx, "Skipping duplicate record", slog.String("title", rec.Title))
			continue
		}
		if _, err := r.pgpool.Exec(ctx, insertContentQuery, insertArgs(rec)...); err != nil {
			r.logger.ErrorContext(ctx, "Failed to insert individual record",
				slog.Any("error", err),
				slog.String("title", rec.Title))
		}
	}
}

// IsDuplicate checks whether a record already exists, by source_url when
// present, otherwise by title and source_type.
func (r *PostgresRepository) IsDuplicate(ctx context.Context, rec *types.ProcessedRecord) (bool, error) {
	var (
		query string
		args  []any
	)
	if rec.SourceURL != "" {
		query = `SELECT EXISTS (SELECT 1 FROM travel_content WHERE source_url = $1)`
		args = []any{rec.SourceURL}
	} else {
		query = `SELECT EXISTS (SELECT 1 FROM travel_content WHERE title = $1 AND source_type = $2)`
		args = []any{truncate(rec.Title, maxTitleLength), string(rec.SourceType)}
	}

	var exists bool
	if err := r.pgpool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	return exists, nil
}

// DeleteOlderThan removes records whose processed_at is older than the given
// age and returns the number of rows deleted.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM travel_content WHERE processed_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old records: %w", err)
	}
	deleted := tag.RowsAffected()
	r.logger.InfoContext(ctx, "Deleted old records",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff))
	return deleted, nil
}

// GetStats reports totals per source type plus additions over the last day.
func (r *PostgresRepository) GetStats(ctx context.Context) (*types.ContentStats, error) {
	stats := &types.ContentStats{
		BySourceType: make(map[string]int64),
		LastUpdated:  time.Now(),
	}

	rows, err := r.pgpool.Query(ctx, `SELECT source_type, COUNT(*) FROM travel_content GROUP BY source_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query source type counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sourceType string
		var count int64
		if err := rows.Scan(&sourceType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source type count: %w", err)
		}
		stats.BySourceType[sourceType] = count
		stats.TotalItems += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading source type counts: %w", err)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	if err := r.pgpool.QueryRow(ctx,
		`SELECT COUNT(*) FROM travel_content WHERE processed_at >= $1`, yesterday,
	).Scan(&stats.RecentAdditions); err != nil {
		return nil, fmt.Errorf("failed to count recent additions: %w", err)
	}

	return stats, nil
}

func insertArgs(rec *types.ProcessedRecord) []any {
	var lat, lng *float64
	if rec.Location != nil {
		lat = &rec.Location.Lat
		lng = &rec.Location.Lng
	}
	return []any{
		rec.ID,
		string(rec.SourceType),
		nullable(rec.SourceName),
		nullable(rec.SourceURL),
		truncate(rec.Title, maxTitleLength),
		nullable(truncate(rec.Description, maxDescriptionLength)),
		nullable(rec.Address),
		lat,
		lng,
		rec.Rating,
		rec.PriceRange,
		rec.Categories,
		rec.Amenities,
		rec.Images,
		truncate(rec.ProcessedText, maxProcessedTextLength),
		rec.Embedding,
		rec.Language,
		rec.ProcessedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Cut on a rune boundary.
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
