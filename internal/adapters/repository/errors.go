package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for loading errors.
var (
	ErrOpenSource      = errors.New("open match source failed")
	ErrMissingHeader   = errors.New("match table has no header row")
	ErrMissingColumn   = errors.New("match table is missing a required column")
	ErrMalformedFile   = errors.New("malformed match table")
	ErrEmptyTable      = errors.New("match table has no valid rows")
	ErrInvalidTable    = errors.New("invalid sql table name")
	ErrQuery           = errors.New("match query failed")
	ErrInvalidUniverse = errors.New("invalid team universe")
	ErrEmptyTeam       = errors.New("empty team name")
	ErrInvalidYear     = errors.New("invalid season end year")
)

// RowError describes a source row that was skipped during load.
type RowError struct {
	Line int // 1-based line (CSV) or row number (SQL)
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }
