package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoLoader   = errors.New("no match loader configured")
	ErrBadSource  = errors.New("unsupported data source")
)
