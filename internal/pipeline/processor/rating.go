package processor

import (
	"math"
	"regexp"
	"strconv"
)

var ratingNumberRe = regexp.MustCompile(`\d+\.?\d*`)

// CleanRating coerces a rating of unknown provenance onto the 0-5 scale.
// Strings have the first decimal number extracted ("4.5 stars" -> 4.5).
// The source scale is inferred from magnitude: values above 10 are read as
// out-of-100 reviews, values above 5 as out-of-10, and rescaled
// proportionally. The result is clamped to [0, 5] and rounded to one
// decimal. Anything non-numeric yields nil.
func CleanRating(value any) *float64 {
	rating, ok := toFloat(value)
	if !ok {
		return nil
	}

	// Scale inference is a heuristic: a source rating of exactly 5 or 10 is
	// taken at the smaller scale.
	switch {
	case rating > 10:
		rating *= 0.05
	case rating > 5:
		rating *= 0.5
	}

	rating = math.Max(0, math.Min(5, rating))
	rating = math.Round(rating*10) / 10
	return &rating
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		match := ratingNumberRe.FindString(v)
		if match == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
