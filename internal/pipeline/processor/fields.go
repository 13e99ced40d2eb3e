package processor

import "github.com/wanderwiseai/travel-etl/internal/types"

// fieldAliases rewrites origin-specific field names onto the canonical ones
// so the rest of the pipeline only ever sees one spelling per field.
var fieldAliases = map[string]string{
	"name":         "title",
	"summary":      "description",
	"location_lat": "latitude",
	"location_lng": "longitude",
	"location_lon": "longitude",
	"img_url":      "image_url",
	"image":        "image_url",
	"url":          "source_url",
	"link":         "source_url",
}

// CanonicalFieldNames returns a copy of the record with aliased field names
// rewritten. A canonical field already present wins over its alias.
func CanonicalFieldNames(raw types.RawRecord) types.RawRecord {
	out := make(types.RawRecord, len(raw))
	for key, value := range raw {
		canonical, ok := fieldAliases[key]
		if !ok {
			canonical = key
		}
		if _, exists := out[canonical]; exists && ok {
			continue
		}
		out[canonical] = value
	}
	return out
}
