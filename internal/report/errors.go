package report

import "errors"

// ErrRender wraps markdown-to-HTML conversion failures.
var ErrRender = errors.New("report render failed")
