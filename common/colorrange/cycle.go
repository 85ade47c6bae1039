package colorrange

import C "cxd/common/constant"

// Cycle hands out colors in turn, starting over after the last one.
type Cycle struct {
	colors []C.Color
	next   int
}

func NewCycle(colors []C.Color) *Cycle {
	return &Cycle{colors: colors}
}

// Next returns the following color, or NoColor when the cycle is empty.
func (c *Cycle) Next() C.Color {
	if len(c.colors) == 0 {
		return C.NoColor
	}
	color := c.colors[c.next]
	c.next = (c.next + 1) % len(c.colors)
	return color
}
