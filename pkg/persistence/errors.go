package persistence

import "errors"

// ErrRunNotFound is returned when a run id has no stored record.
var ErrRunNotFound = errors.New("run not found")

func IsRunNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound)
}
