package constant

// Color is a member of the closed palette a range or a column can be painted with.
// The empty Color means "no color" and is never part of the palette.
type Color string

const (
	Black        Color = "black"
	Red          Color = "red"
	Green        Color = "green"
	Yellow       Color = "yellow"
	Blue         Color = "blue"
	Magenta      Color = "magenta"
	Cyan         Color = "cyan"
	White        Color = "white"
	LightGrey    Color = "light_grey"
	DarkGrey     Color = "dark_grey"
	LightRed     Color = "light_red"
	LightGreen   Color = "light_green"
	LightYellow  Color = "light_yellow"
	LightBlue    Color = "light_blue"
	LightMagenta Color = "light_magenta"
	LightCyan    Color = "light_cyan"

	NoColor Color = ""
)

var palette = []Color{
	Black, Red, Green, Yellow, Blue, Magenta, Cyan, White,
	LightGrey, DarkGrey, LightRed, LightGreen, LightYellow,
	LightBlue, LightMagenta, LightCyan,
}

// AnalyzerColors are handed out in turn by the format analyzers.
// The greys, black and white stay reserved for the default, shadow and title roles.
var AnalyzerColors = []Color{
	Red, Green, Yellow, Blue, Magenta, Cyan,
	LightRed, LightGreen, LightYellow, LightBlue, LightMagenta, LightCyan,
}
