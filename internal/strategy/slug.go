package strategy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// slugFallback is returned when transliteration leaves nothing usable.
// Distinct from the empty-input case: slugifying "" yields "".
const slugFallback = "unknown"

// Slugify converts text to a URL-safe path segment using "-" as the
// delimiter. See SlugifyWith.
func Slugify(text string) string {
	return SlugifyWith(text, "-")
}

// SlugifyWith converts text to a URL-safe path segment: diacritics fold to
// their base letters, thousand-separator commas between digits are removed,
// and any remaining run of non-alphanumeric characters collapses to a
// single delimiter. Leading and trailing delimiters are stripped.
//
// The function is total: every input has a defined output. An empty input
// maps to an empty slug; a non-empty input with no alphanumeric content
// maps to "unknown".
func SlugifyWith(text, delimiter string) string {
	if text == "" {
		return ""
	}

	folded := stripMarks(norm.NFKD.String(text))
	folded = stripGroupingCommas(strings.ToLower(folded))

	var b strings.Builder
	b.Grow(len(folded))
	pendingDelim := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDelim && b.Len() > 0 {
				b.WriteString(delimiter)
			}
			pendingDelim = false
			b.WriteRune(r)
			continue
		}
		pendingDelim = true
	}

	if b.Len() == 0 {
		return slugFallback
	}
	return b.String()
}

// stripMarks removes Unicode combining marks left behind by NFKD
// decomposition, so "é" ends up as "e".
func stripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripGroupingCommas drops commas that sit between two digits, so
// "1,000,000" slugifies to "1000000" rather than "1-000-000".
func stripGroupingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i, r := range runes {
		if r == ',' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
