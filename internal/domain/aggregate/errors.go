package aggregate

import (
	"errors"
)

// Sentinel error kinds for this package, checkable with errors.Is from callers.
var (
	ErrUnknownKey    = errors.New("unknown grouping key")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrUnknownOp     = errors.New("unknown aggregation op")
)
