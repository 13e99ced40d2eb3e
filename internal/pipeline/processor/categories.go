package processor

import (
	"strings"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// categorySynonyms maps lower-cased free-form tags onto the canonical
// vocabulary. Kept as data so new synonyms are a table edit, not a code
// change. Tags without an entry pass through lower-cased.
var categorySynonyms = map[string]string{
	"lodging":        "hotel",
	"accommodation":  "hotel",
	"dining":         "restaurant",
	"food":           "restaurant",
	"sightseeing":    "attraction",
	"tour":           "activity",
	"entertainment":  "activity",
	"transport":      "transportation",
	"transportation": "transport",
}

// StandardizeCategories maps free-form category tags onto the canonical
// vocabulary, preserving first-occurrence order and dropping duplicates.
// Non-sequence input (a bare string, a number, nil) yields an empty slice,
// and non-string elements inside a sequence are skipped.
func StandardizeCategories(value any) []string {
	raw := types.RawRecord{"categories": value}.GetSlice("categories")

	standardized := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		tag, ok := v.(string)
		if !ok {
			continue
		}
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if canonical, ok := categorySynonyms[tag]; ok {
			tag = canonical
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		standardized = append(standardized, tag)
	}
	return standardized
}
