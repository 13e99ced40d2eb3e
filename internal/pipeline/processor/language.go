package processor

const (
	// DefaultLanguage is assumed when no other script dominates the text.
	DefaultLanguage = "en"
	// LanguageHebrew is the secondary supported language.
	LanguageHebrew = "he"

	// hebrewThreshold is the fraction of Hebrew-script characters above
	// which a text is classified as Hebrew.
	hebrewThreshold = 0.3
)

// DetectLanguage classifies text as English or Hebrew with a
// character-frequency heuristic: when more than 30% of the characters fall
// in the Hebrew Unicode block (U+0590-U+05FF) the text is Hebrew, otherwise
// English. Empty input yields the default language. Deterministic and pure.
func DetectLanguage(text string) string {
	if text == "" {
		return DefaultLanguage
	}

	var total, hebrew int
	for _, r := range text {
		total++
		if r >= 0x0590 && r <= 0x05FF {
			hebrew++
		}
	}
	if float64(hebrew) > float64(total)*hebrewThreshold {
		return LanguageHebrew
	}
	return DefaultLanguage
}
