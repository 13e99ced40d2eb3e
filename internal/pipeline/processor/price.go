package processor

import "strings"

const defaultPriceRange = "$$"

// Price keywords are matched as substrings, mirroring how descriptors show
// up in scraped copy ("very cheap stay!", "luxury resort").
var (
	budgetWords   = []string{"budget", "cheap", "low", "inexpensive"}
	luxuryWords   = []string{"luxury", "expensive", "high-end", "premium"}
	moderateWords = []string{"moderate", "mid-range"}
)

// StandardizePriceRange maps a free-form price descriptor onto the 3-tier
// symbolic scale {"$", "$$", "$$$"}. Non-string input, empty strings and
// unrecognized descriptors default to the moderate tier. Dollar-sign strings
// keep their count, clamped to at most three symbols.
func StandardizePriceRange(value any) string {
	s, ok := value.(string)
	if !ok {
		return defaultPriceRange
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultPriceRange
	}

	if containsAny(s, budgetWords) {
		return "$"
	}
	if containsAny(s, luxuryWords) {
		return "$$$"
	}
	if containsAny(s, moderateWords) {
		return "$$"
	}
	if n := strings.Count(s, "$"); n > 0 {
		if n > 3 {
			n = 3
		}
		return strings.Repeat("$", n)
	}
	return defaultPriceRange
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
