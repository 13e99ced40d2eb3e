package processor

import (
	"strings"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// ComposeText builds the single text blob fed into embedding generation and
// search indexing. Fields contribute in a fixed order, values only (no
// labels), each separated by a single space; absent or empty fields
// contribute nothing. A record with only a title composes to exactly the
// title.
func ComposeText(rec *types.ProcessedRecord) string {
	parts := make([]string, 0, 8)
	appendPart := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(rec.Title)
	appendPart(rec.Description)
	appendPart(strings.Join(rec.Categories, " "))
	appendPart(rec.Address)
	appendPart(rec.Destination)
	appendPart(rec.Origin)
	appendPart(strings.Join(rec.Amenities, " "))

	return strings.Join(parts, " ")
}
