package lyrics

// Letter returns the symbol for the i-th rhyme group: A..Z, then a..z,
// then Latin Extended-A letters from U+0100 on.
func Letter(i int) string {
	switch {
	case i < 26:
		return string(rune('A' + i))
	case i < 52:
		return string(rune('a' + i - 26))
	default:
		return string(rune(0x0100 + i - 52))
	}
}
