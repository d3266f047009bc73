package chart

import "errors"

// Sentinel kinds for chart errors.
var (
	ErrNoData        = errors.New("no data to chart")
	ErrUnknownKind   = errors.New("unknown chart kind")
	ErrUnknownFormat = errors.New("unknown image format")
	ErrRender        = errors.New("chart render failed")
)
