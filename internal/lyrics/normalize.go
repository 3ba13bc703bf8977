package lyrics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keptPunctuation survives normalization next to Hebrew, digits and
// whitespace. ׃ is sof pasuq and ־ is maqaf.
const keptPunctuation = ".,!?׃־"

// Normalize splits raw lyrics into cleaned lines. Characters outside the
// Hebrew block, ASCII digits, whitespace and a few punctuation marks become
// spaces, whitespace runs collapse, and lines left without any Hebrew
// character are dropped. Line order is preserved. No Unicode normalization
// happens here: presentation forms (U+FB1D–U+FB4F) lie outside the block and
// become spaces like any other foreign rune.
func Normalize(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cleaned := strings.Join(strings.Fields(strings.Map(keepRune, line)), " ")
		if cleaned != "" && containsHebrew(cleaned) {
			lines = append(lines, cleaned)
		}
	}

	return lines
}

func keepRune(r rune) rune {
	switch {
	case isHebrewBlock(r), unicode.IsSpace(r), r >= '0' && r <= '9':
		return r
	case strings.ContainsRune(keptPunctuation, r):
		return r
	}
	return ' '
}

func isHebrewBlock(r rune) bool {
	return r >= 0x0590 && r <= 0x05FF
}

func containsHebrew(s string) bool {
	return strings.IndexFunc(s, isHebrewBlock) >= 0
}

// StripNiqqud removes vowel points and cantillation marks so that pointed
// text yields whole words. Presentation forms such as שׁ decompose to
// their base letter on the way.
func StripNiqqud(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
