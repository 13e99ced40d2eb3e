package types

import (
	"time"

	"github.com/google/uuid"
)

// SourceType identifies where a raw record was extracted from.
type SourceType string

const (
	SourceAPI      SourceType = "api"
	SourceScraping SourceType = "scraping"
	SourceSocial   SourceType = "social"
	SourceManual   SourceType = "manual"
)

// Location holds a geographic coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawRecord is an untyped field mapping produced by an extractor. No shape
// is guaranteed: any field may be absent, nil or wrong-typed, so reads go
// through the accessor methods below instead of direct map indexing.
type RawRecord map[string]any

// GetString returns the named field as a string, or "" when the field is
// absent or not a string.
func (r RawRecord) GetString(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// GetSlice returns the named field as a []any, or nil when the field is
// absent or not a slice. A []string value is widened for convenience since
// extractors hand over both shapes.
func (r RawRecord) GetSlice(key string) []any {
	switch v := r[key].(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	return nil
}

// Get returns the raw value and whether the field is present and non-nil.
func (r RawRecord) Get(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the field is present with a non-nil value.
func (r RawRecord) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// ContentStats summarizes the persisted content store.
type ContentStats struct {
	TotalItems      int64            `json:"total_items"`
	BySourceType    map[string]int64 `json:"by_source_type"`
	RecentAdditions int64            `json:"recent_additions"`
	LastUpdated     time.Time        `json:"last_updated"`
}

// ProcessedRecord is the pipeline's output: a validated, normalized,
// enrichment-complete content record ready for persistence.
type ProcessedRecord struct {
	ID            uuid.UUID  `json:"id,omitempty"`
	SourceType    SourceType `json:"source_type"`
	SourceName    string     `json:"source_name,omitempty"`
	SourceURL     string     `json:"source_url,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	Origin        string     `json:"origin,omitempty"`
	Categories    []string   `json:"categories"`
	Amenities     []string   `json:"amenities,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	PriceRange    string     `json:"price_range"`
	Location      *Location  `json:"location,omitempty"`
	ProcessedText string     `json:"processed_text"`
	Language      string     `json:"language"`
	Embedding     []float32  `json:"embedding,omitempty"`
	ProcessedAt   time.Time  `json:"processed_at"`
}
