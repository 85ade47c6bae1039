package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	C "cxd/common/constant"
)

// Config is the render configuration of a dump.
type Config struct {
	LogConfig LogConfig `json:"log,omitempty" toml:"log"`

	ChunkLength         int     `json:"chunk_length" toml:"chunk_length"`
	ReplaceNotPrintable string  `json:"replace_not_printable" toml:"replace_not_printable"`
	ColumnSeparator     string  `json:"column_separator" toml:"column_separator"`
	AddressShift        int64   `json:"address_shift" toml:"address_shift"` // display only, never used for range lookups
	DefaultColor        C.Color `json:"default_color" toml:"default_color"`
	ShadowColor         C.Color `json:"shadow_color" toml:"shadow_color"`
	AddressColor        C.Color `json:"address_color" toml:"address_color"`
	TitleColor          C.Color `json:"title_color" toml:"title_color"`
	ColorMode           string  `json:"color_mode,omitempty" toml:"color_mode"` // "auto", "always" or "never"

	EnableShadowBytes      bool `json:"enable_shadow_bytes" toml:"enable_shadow_bytes"`
	HideNullLines          bool `json:"hide_null_lines" toml:"hide_null_lines"`
	StopAtFirstColorFound  bool `json:"stop_at_first_color_found" toml:"stop_at_first_color_found"`
	MemorizeLastColorRange bool `json:"memorize_last_color_range" toml:"memorize_last_color_range"`
	ShowColumnsNameAtStart bool `json:"show_columns_name_at_start" toml:"show_columns_name_at_start"`
	ShowColumnsNameAtEnd   bool `json:"show_columns_name_at_end" toml:"show_columns_name_at_end"`
}

// Utility Definitions
type LogConfig struct {
	LogLevel string `json:"log_level,omitempty" toml:"log_level"` // default: "info"
}

// Default returns the configuration written by genconfig.
func Default() *Config {
	return &Config{
		LogConfig:              LogConfig{LogLevel: C.DefaultLogLevel},
		ChunkLength:            C.DefaultChunkLength,
		ReplaceNotPrintable:    C.DefaultReplaceNotPrintable,
		ColumnSeparator:        C.DefaultColumnSeparator,
		DefaultColor:           C.DefaultDefaultColor,
		ShadowColor:            C.DefaultShadowColor,
		AddressColor:           C.DefaultAddressColor,
		TitleColor:             C.DefaultTitleColor,
		ColorMode:              C.ColorModeAuto,
		EnableShadowBytes:      true,
		HideNullLines:          true,
		StopAtFirstColorFound:  true,
		MemorizeLastColorRange: true,
		ShowColumnsNameAtStart: true,
		ShowColumnsNameAtEnd:   true,
	}
}

// Validate checks the rendering options. It never corrects a value.
func (c *Config) Validate() error {
	var errs []error
	if c.ChunkLength <= 0 {
		errs = append(errs, fmt.Errorf("chunk_length must be positive, got %d", c.ChunkLength))
	}
	if utf8.RuneCountInString(c.ReplaceNotPrintable) != 1 {
		errs = append(errs, fmt.Errorf("replace_not_printable must be exactly one character, got %q", c.ReplaceNotPrintable))
	}
	for _, field := range []struct {
		name  string
		color C.Color
	}{
		{"default_color", c.DefaultColor},
		{"shadow_color", c.ShadowColor},
		{"address_color", c.AddressColor},
		{"title_color", c.TitleColor},
	} {
		if !field.color.IsValid() {
			errs = append(errs, fmt.Errorf("%s: %q is not a palette color", field.name, field.color))
		}
	}
	switch c.ColorMode {
	case "", C.ColorModeAuto, C.ColorModeAlways, C.ColorModeNever:
	default:
		errs = append(errs, fmt.Errorf("invalid color_mode: %s. Options are: auto, always, never", c.ColorMode))
	}
	return errors.Join(errs...)
}
