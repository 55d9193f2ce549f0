package dataset

import "errors"

// Sentinel kinds for dataset loading failures. ErrLoad wraps every
// failure; the others narrow the cause for errors.Is checks.
var (
	ErrLoad     = errors.New("dataset load failed")
	ErrNotFound = errors.New("dataset file not found")
	ErrDecode   = errors.New("dataset file is not valid JSON")
	ErrSchema   = errors.New("dataset document failed validation")
)
