package lyrics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// hebrewLetters matches a run of Hebrew letters, final forms included.
var hebrewLetters = regexp.MustCompile(`[א-ת]+`)

var stopWords = map[string]struct{}{
	"את": {}, "של": {}, "על": {}, "אל": {}, "לא": {},
	"או": {}, "גם": {}, "כי": {}, "אם": {}, "עם": {},
}

// ExtractWords returns, for each whitespace-separated token, its first run
// of Hebrew letters when that run is at least two letters long.
func ExtractWords(line string) []string {
	var words []string
	for _, token := range strings.Fields(line) {
		run := hebrewLetters.FindString(token)
		if utf8.RuneCountInString(run) > 1 {
			words = append(words, run)
		}
	}
	return words
}

// IsStopWord reports whether word is a function word that carries no
// rhyme.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
