package trend

import (
	"errors"
)

// ErrInsufficientData reports a series too short to summarize. Callers check
// it with errors.Is and usually render "insufficient data" instead of failing.
var ErrInsufficientData = errors.New("insufficient data")
