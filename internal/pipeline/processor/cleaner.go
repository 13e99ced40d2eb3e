package processor

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// CleanText coerces value to a cleaned string: nil maps to "", non-string
// values to their string representation. String input has markup stripped
// down to its text content, runs of whitespace collapsed to a single space
// and surrounding whitespace trimmed. The function is idempotent over
// already-clean text.
func CleanText(value any) string {
	if value == nil {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return fmt.Sprint(value)
	}

	if strings.ContainsRune(text, '<') {
		text = stripTags(text)
	}
	text = filterRunes(text)
	return strings.Join(strings.Fields(text), " ")
}

// stripTags drops every markup tag and keeps the enclosed text nodes, so
// nested tags collapse to their combined text content.
func stripTags(s string) string {
	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tz.Text())
		}
	}
}

// filterRunes removes control characters and symbols that break downstream
// indexing, keeping letters, digits, whitespace and common punctuation.
func filterRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		if strings.ContainsRune(`-.,!?()&%$#@:;'"/`, r) {
			return r
		}
		return -1
	}, s)
}
