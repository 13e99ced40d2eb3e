package processor

import (
	"strings"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

const minTitleLength = 3

// Validate reports whether a raw record carries the minimum shape required
// for processing: a string title of at least three characters after trimming
// and a string source_type. It is a pure gate with no side effects; callers
// must not run any later stage when it returns false.
func Validate(raw types.RawRecord) bool {
	title, ok := raw["title"].(string)
	if !ok || len(strings.TrimSpace(title)) < minTitleLength {
		return false
	}
	if _, ok := raw["source_type"].(string); !ok {
		return false
	}
	return true
}
