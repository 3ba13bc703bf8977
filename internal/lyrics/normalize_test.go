package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "plain lines", raw: "שלום עולם\nמה קורה", want: []string{"שלום עולם", "מה קורה"}},
		{name: "blank lines dropped", raw: "\n\nשלום\n   \n\nעולם\n", want: []string{"שלום", "עולם"}},
		{name: "crlf", raw: "שלום\r\nעולם\r\n", want: []string{"שלום", "עולם"}},
		{name: "latin becomes space", raw: "yo שלום bro עולם", want: []string{"שלום עולם"}},
		{name: "digits and punctuation kept", raw: "בן 23, מה?!", want: []string{"בן 23, מה?!"}},
		{name: "emoji removed", raw: "שלום 🎤🔥", want: []string{"שלום"}},
		{name: "whitespace collapsed", raw: "  שלום \t\t עולם  ", want: []string{"שלום עולם"}},
		{name: "latin only line dropped", raw: "hello\nשלום\n123", want: []string{"שלום"}},
		{name: "maqaf kept", raw: "בית־ספר", want: []string{"בית־ספר"}},
		{name: "no hebrew at all", raw: "hello world", want: nil},
		{name: "presentation forms only line dropped", raw: "\ufb2a\ufb4b", want: nil},
		{name: "presentation form splits word", raw: "של\ufb2aום", want: []string{"של ום"}},
		{name: "combining mark order kept", raw: "ש\u05c1\u05b8", want: []string{"ש\u05c1\u05b8"}},
		{name: "empty", raw: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsStable(t *testing.T) {
	t.Parallel()

	raw := "  אני רק רוצה!!! להגיד לך איך 🎶\n\nabc\nשאת יפה, כמו שמיים"
	once := Normalize(raw)
	for _, line := range once {
		assert.Equal(t, []string{line}, Normalize(line))
	}
}

func TestStripNiqqud(t *testing.T) {
	t.Parallel()

	pointed := "ש\u05b8\u05c1ל\u05d5\u05b9ם"
	assert.Empty(t, ExtractWords(Normalize(pointed)[0]), "points split the word into single letters")

	stripped := StripNiqqud(pointed)
	assert.Equal(t, "שלום", stripped)
	assert.Equal(t, []string{"שלום"}, ExtractWords(stripped))

	assert.Equal(t, "שלום", StripNiqqud("\ufb2aלום"), "presentation form decomposes to its base letter")
	assert.Equal(t, "plain text", StripNiqqud("plain text"))
}
