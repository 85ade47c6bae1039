package constant

const (
	Version = "0.3.0"

	// BlockSize is the size of a single read when a file is streamed.
	BlockSize = 4096

	AddressWidth = 8

	DefaultChunkLength         = 16
	DefaultReplaceNotPrintable = "."
	DefaultColumnSeparator     = "\t"
	DefaultDefaultColor        = White
	DefaultShadowColor         = DarkGrey
	DefaultAddressColor        = Cyan
	DefaultTitleColor          = DarkGrey
	DefaultLogLevel            = "info"

	ColorModeAuto   = "auto"
	ColorModeAlways = "always"
	ColorModeNever  = "never"

	// ShadowByte is rendered with the shadow color when it is outside every range.
	ShadowByte = byte(0x00)
)
