package hexdump

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("invalid render configuration")
	ErrNotRegularFile = errors.New("not a regular file")
)

// ConfigError is returned by New when the configuration cannot be used as is.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfig, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
