package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/eplhistory/internal/adapters/chart"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = NewKind("bad request")
	ErrRender     = NewKind("render failed")
)

// NewKind declares a new sentinel error kind.
func NewKind(name string) error { return errors.New(name) }

// Wrap annotates err with the operation that failed.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKind annotates err with op and marks it as kind for errors.Is.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classify maps an error to its HTTP status and response code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, chart.ErrUnknownKind), errors.Is(err, chart.ErrUnknownFormat), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
