package export

import "errors"

// ErrWrite wraps every failure to produce an export document.
var ErrWrite = errors.New("export write failed")
