// Package enrich implements the external-call stages that add derived
// fields (embedding vectors, geocoded coordinates) to processed records.
package enrich

import (
	"context"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// Enricher adds supplementary fields to a processed record. Implementations
// wrap external services and report failure through the returned error; the
// pipeline drops the record on error and keeps going with the rest of the
// batch.
type Enricher interface {
	Enrich(ctx context.Context, rec *types.ProcessedRecord) error
}

// Chain runs enrichers in order and stops at the first error.
type Chain []Enricher

func (c Chain) Enrich(ctx context.Context, rec *types.ProcessedRecord) error {
	for _, e := range c {
		if err := e.Enrich(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
