// Package apperr holds the error kinds shared by every module. Module errors wrap one of
// these sentinels so that the HTTP layer can pick a status code with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("conflict")
	ErrUnsupportedState = errors.New("unsupported state")
)

// Kind returns the sentinel wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrBadRequest, ErrConflict, ErrUnsupportedState} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
