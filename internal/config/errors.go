package config

import (
	"errors"
)

// Sentinel error kinds for this package, checkable with errors.Is from callers.
var (
	// ErrLoadConfig wraps failures reading or decoding a config source.
	ErrLoadConfig = errors.New("load config failed")

	// ErrInvalidConfig wraps validation failures on the assembled config.
	ErrInvalidConfig = errors.New("invalid config")
)
