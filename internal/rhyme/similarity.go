package rhyme

import (
	"math"
	"strings"
)

// BoostFactor scales the suffix ratio for keys that share two or more
// trailing characters. Scores above 1.0 are clamped.
const BoostFactor = 1.2

// EndingPairs lists key endings that are heard as rhyming with each other.
// A pair matches in either direction.
var EndingPairs = [][2]string{
	{"et", "at"},
	{"im", "am"},
	{"ot", "ut"},
	{"tz", "z"},
	{"ch", "k"},
	{"sh", "s"},
}

// Similarity returns a score in [0,1] describing how well two phonetic
// keys rhyme. The first matching rule decides the score:
//
//   - identical keys score 1.0, an empty key scores 0.0
//   - two or more matching trailing characters score
//     min(1, matches/shorterLength * BoostFactor)
//   - one matching trailing character between short keys (≤3) scores 0.6
//   - matching last characters score 0.5
//   - endings listed in EndingPairs score 0.5
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	minLen := min(len(ra), len(rb))

	matches := 0
	for i := 1; i <= minLen; i++ {
		if ra[len(ra)-i] != rb[len(rb)-i] {
			break
		}
		matches++
	}

	switch {
	case matches >= 2:
		return math.Min(1.0, float64(matches)/float64(minLen)*BoostFactor)
	case matches == 1 && minLen <= 3:
		return 0.6
	}

	if ra[len(ra)-1] == rb[len(rb)-1] {
		return 0.5
	}

	for _, pair := range EndingPairs {
		if endsWithPair(a, b, pair[0], pair[1]) || endsWithPair(a, b, pair[1], pair[0]) {
			return 0.5
		}
	}

	return 0.0
}

func endsWithPair(a, b, endA, endB string) bool {
	return strings.HasSuffix(a, endA) && strings.HasSuffix(b, endB)
}
