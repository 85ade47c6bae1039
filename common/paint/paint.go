package paint

import (
	"fmt"
	"os"

	C "cxd/common/constant"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Painter wraps text so that it is displayed with the given palette color.
type Painter interface {
	Paint(text string, c C.Color) string
}

// Func adapts an ordinary function to the Painter interface.
type Func func(text string, c C.Color) string

func (f Func) Paint(text string, c C.Color) string {
	return f(text, c)
}

// Plain leaves every text untouched.
var Plain Painter = Func(func(text string, _ C.Color) string { return text })

var attributes = map[C.Color]color.Attribute{
	C.Black:        color.FgBlack,
	C.Red:          color.FgRed,
	C.Green:        color.FgGreen,
	C.Yellow:       color.FgYellow,
	C.Blue:         color.FgBlue,
	C.Magenta:      color.FgMagenta,
	C.Cyan:         color.FgCyan,
	C.LightGrey:    color.FgWhite,
	C.DarkGrey:     color.FgHiBlack,
	C.LightRed:     color.FgHiRed,
	C.LightGreen:   color.FgHiGreen,
	C.LightYellow:  color.FgHiYellow,
	C.LightBlue:    color.FgHiBlue,
	C.LightMagenta: color.FgHiMagenta,
	C.LightCyan:    color.FgHiCyan,
	C.White:        color.FgHiWhite,
}

// ANSI emits SGR escape sequences through fatih/color.
type ANSI struct {
	colors map[C.Color]*color.Color
}

// NewANSI builds a painter for one of the color modes: always, never or auto.
// In auto mode colors are enabled only when f is a terminal.
func NewANSI(mode string, f *os.File) (*ANSI, error) {
	var enabled bool
	switch mode {
	case C.ColorModeAlways:
		enabled = true
	case C.ColorModeNever:
		enabled = false
	case C.ColorModeAuto, "":
		enabled = IsTerminal(f)
	default:
		return nil, fmt.Errorf("invalid color mode: %s. Options are: auto, always, never", mode)
	}
	a := &ANSI{colors: make(map[C.Color]*color.Color, len(attributes))}
	for name, attr := range attributes {
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		a.colors[name] = c
	}
	return a, nil
}

func (a *ANSI) Paint(text string, c C.Color) string {
	if col, ok := a.colors[c]; ok {
		return col.Sprint(text)
	}
	return text
}

func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
