package cache

import (
	"errors"
	"fmt"
)

// ErrEmptyKey is returned when an operation is given an empty key.
var ErrEmptyKey = errors.New("empty cache key")

// BackendError reports a failure of the storage behind a cache, as opposed
// to a miss. Callers may treat it as a miss and carry on without the cache.
type BackendError struct {
	Backend string // "file" or "redis"
	Op      string // "get", "set", "delete", ...
	Err     error
}

// Error describes the failed operation.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s cache %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError checks if err is, or wraps, a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

func backendError(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
