package model

import "errors"

// Sentinel kinds for model parsing errors.
var (
	ErrInvalidResult = errors.New("invalid result code")
)
