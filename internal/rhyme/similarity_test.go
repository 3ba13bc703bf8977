package rhyme

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "shlm", b: "shlm", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "", b: "alom", want: 0.0},
		{name: "other empty", a: "alom", b: "", want: 0.0},
		{name: "full suffix of shorter key", a: "ik", b: "aik", want: 1.0},
		{name: "three of four clamped", a: "alom", b: "elom", want: 0.9},
		{name: "single match short key", a: "ak", b: "uk", want: 0.6},
		{name: "single match at length three", a: "bak", b: "tuk", want: 0.6},
		{name: "single match long keys", a: "mlak", b: "shuk", want: 0.5},
		{name: "shared last rune wins over ending pair", a: "kvet", b: "shat", want: 0.5},
		{name: "ending pair ch k", a: "roach", b: "mlk", want: 0.5},
		{name: "ending pair reversed", a: "mlk", b: "roach", want: 0.5},
		{name: "ending pair sh s", a: "gush", b: "kos", want: 0.5},
		{name: "no rhyme", a: "miim", b: "tsiv", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityProperties(t *testing.T) {
	keys := []string{"a", "ik", "aik", "alom", "shlm", "roach", "mlk", "gush", "kos", "esrim ve shalosh", "num"}

	for _, a := range keys {
		if got := Similarity(a, a); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", a, a, got)
		}
		for _, b := range keys {
			ab, ba := Similarity(a, b), Similarity(b, a)
			if ab != ba {
				t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("Similarity(%q, %q) = %v out of range", a, b, ab)
			}
		}
	}
}

func TestSimilarityCountsRunes(t *testing.T) {
	// IPA keys from an external model hold multi-byte runes.
	got := Similarity("ʃaˈlom", "ʃˈlom")
	want := math.Min(1, 4.0/5.0*BoostFactor)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
}
