package api

import (
	"errors"
	"net/http"

	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/wheel"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrNoData     = errors.New("no data")
	ErrInternal   = errors.New("internal error")
)

// Error records the handler operation and the kind of an API failure.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Op + ": " + e.Kind.Error()
	case e.Kind == nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind with no further cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap attaches op to err. The kind is derived from err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// WrapKind attaches op and an explicit kind to err.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// kindOf maps errors from the layers below onto API kinds.
func kindOf(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidFilter):
		return ErrBadRequest
	case errors.Is(err, wheel.ErrNoData):
		return ErrNoData
	default:
		return ErrInternal
	}
}

// status returns the HTTP status and error code for err.
func status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrNoData):
		return http.StatusNotFound, "no_data"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
