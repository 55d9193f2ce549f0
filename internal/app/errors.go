package service

import "errors"

// Request failure kinds the HTTP layer maps onto status codes.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrUnknownBrand   = errors.New("unknown brand")
	ErrBadCompare     = errors.New("invalid comparison request")
	ErrBadFormat      = errors.New("unsupported export format")
	ErrExportTooLarge = errors.New("export exceeds row cap")
)
