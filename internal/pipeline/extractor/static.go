package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// StaticExtractor serves a fixed set of sample hotel and attraction records
// per destination. It stands in for the real API extractors in development
// runs and tests, where no upstream credentials are configured.
type StaticExtractor struct {
	destinations []string
}

func NewStaticExtractor(destinations []string) *StaticExtractor {
	return &StaticExtractor{destinations: destinations}
}

func (e *StaticExtractor) Name() string { return "static" }

func (e *StaticExtractor) Extract(ctx context.Context) ([]types.RawRecord, error) {
	records := make([]types.RawRecord, 0, len(e.destinations)*3)
	for _, destination := range e.destinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, e.sampleRecords(destination)...)
	}
	return records, nil
}

func (e *StaticExtractor) sampleRecords(destination string) []types.RawRecord {
	extractedAt := time.Now().Format(time.RFC3339)
	return []types.RawRecord{
		{
			"source_type":  "api",
			"source_name":  "static",
			"title":        fmt.Sprintf("Grand Hotel %s", destination),
			"description":  fmt.Sprintf("Luxury hotel in the heart of %s with excellent amenities and service.", destination),
			"address":      fmt.Sprintf("123 Main Street, %s", destination),
			"rating":       4.5,
			"price_range":  "luxury",
			"categories":   []string{"hotel", "accommodation"},
			"amenities":    []string{"WiFi", "Pool", "Gym", "Restaurant", "Spa"},
			"destination":  destination,
			"extracted_at": extractedAt,
		},
		{
			"source_type":  "api",
			"source_name":  "static",
			"title":        fmt.Sprintf("Budget Inn %s", destination),
			"description":  fmt.Sprintf("Affordable accommodation in %s perfect for budget travelers.", destination),
			"address":      fmt.Sprintf("456 Budget Ave, %s", destination),
			"rating":       3.8,
			"price_range":  "budget",
			"categories":   []string{"hotel", "budget", "accommodation"},
			"amenities":    []string{"WiFi", "Breakfast"},
			"destination":  destination,
			"extracted_at": extractedAt,
		},
		{
			"source_type":  "scraping",
			"source_name":  "static",
			"title":        fmt.Sprintf("Old Town Walking Tour %s", destination),
			"description":  fmt.Sprintf("<p>Guided walking tour through the historic center of %s.</p>", destination),
			"rating":       "4.7 stars",
			"categories":   []string{"tour", "sightseeing"},
			"destination":  destination,
			"extracted_at": extractedAt,
		},
	}
}
