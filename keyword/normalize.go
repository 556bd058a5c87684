package keyword

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for keyword comparison: everything except
// letters (any script), digits and whitespace becomes a space, the result is
// lower-cased, whitespace runs collapse to one space, and the ends are
// trimmed. Normalize is idempotent and returns "" for empty input.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
