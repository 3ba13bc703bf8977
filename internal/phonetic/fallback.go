package phonetic

import (
	"context"
	"regexp"
	"strings"
)

const (
	twentyThree = "esrim ve shalosh"
	numberToken = "num"
)

// \p{Nd} rather than \d so non-ASCII digits collapse the same way.
var digitRun = regexp.MustCompile(`\p{Nd}+`)

// letterSounds maps every Hebrew letter, final forms included, to a rough
// Latin sound.
var letterSounds = map[rune]string{
	'א': "a", 'ב': "b", 'ג': "g", 'ד': "d", 'ה': "h",
	'ו': "u", 'ז': "z", 'ח': "ch", 'ט': "t", 'י': "i",
	'כ': "k", 'ך': "k", 'ל': "l", 'מ': "m", 'ם': "m",
	'נ': "n", 'ן': "n", 'ס': "s", 'ע': "a", 'פ': "p",
	'ף': "f", 'צ': "ts", 'ץ': "ts", 'ק': "k", 'ר': "r",
	'ש': "sh", 'ת': "t",
}

// Fallback is the always-available transcriber. It is deterministic and
// holds no state.
type Fallback struct{}

// NewFallback creates the built-in transcriber.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Transcribe returns Key(word).
func (f *Fallback) Transcribe(_ context.Context, word string) string {
	return Key(word)
}

// Name returns the transcriber name.
func (f *Fallback) Name() string {
	return "builtin"
}

// Available is always false; no external model is involved.
func (f *Fallback) Available() bool {
	return false
}

// Key computes the fallback phonetic key of a word: lowercase, spell out
// the number 23 and collapse other digit runs, map letters through the
// sound table and keep the last 4 runes (or the last 2, or everything for
// very short results).
func Key(word string) string {
	word = strings.ToLower(word)
	word = strings.ReplaceAll(word, "23", twentyThree)
	word = digitRun.ReplaceAllString(word, numberToken)

	var b strings.Builder
	for _, r := range word {
		if sound, ok := letterSounds[r]; ok {
			b.WriteString(sound)
			continue
		}
		b.WriteRune(r)
	}

	return suffix([]rune(b.String()))
}

func suffix(r []rune) string {
	switch {
	case len(r) >= 4:
		return string(r[len(r)-4:])
	case len(r) >= 2:
		return string(r[len(r)-2:])
	default:
		return string(r)
	}
}
