package constant

import (
	"fmt"
	"strings"
)

// Palette returns a copy of every legal color name, in display order.
func Palette() []Color {
	return append([]Color(nil), palette...)
}

func (c Color) IsValid() bool {
	for _, p := range palette {
		if c == p {
			return true
		}
	}
	return false
}

func (c Color) String() string {
	return string(c)
}

// ParseColor accepts a palette name, surrounding blanks ignored.
// An empty name yields NoColor without error.
func ParseColor(s string) (Color, error) {
	c := Color(strings.TrimSpace(s))
	if c == NoColor || c.IsValid() {
		return c, nil
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}
