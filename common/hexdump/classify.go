package hexdump

const hexDigits = "0123456789ABCDEF"

// IsPrintable reports whether b is an ASCII letter, digit, punctuation mark or space.
func IsPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// Glyph returns the ascii column text for b.
func Glyph(b byte, placeholder string) string {
	if IsPrintable(b) {
		return string(rune(b))
	}
	return placeholder
}

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0f]})
}

func isZero(chunk []byte) bool {
	for _, b := range chunk {
		if b != 0 {
			return false
		}
	}
	return true
}
