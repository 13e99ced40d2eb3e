// Package extractor defines the upstream boundary of the pipeline: sources
// that hand over raw, unvalidated record mappings.
package extractor

import (
	"context"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// Extractor produces raw records from an external data source (travel API,
// scraped pages, social posts). No schema is enforced on the output; the
// processor validates defensively.
type Extractor interface {
	// Name identifies the source for logging and rate-limit bookkeeping.
	Name() string
	Extract(ctx context.Context) ([]types.RawRecord, error)
}
