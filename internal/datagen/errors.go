package datagen

import "errors"

// Generation failure kinds, checked with errors.Is by the CLI and tests.
var (
	ErrConfig = errors.New("invalid generator configuration")
	ErrVerify = errors.New("dataset verification failed")
	ErrWrite  = errors.New("dataset write failed")
)
