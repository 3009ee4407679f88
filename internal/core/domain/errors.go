package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuth       = errors.New("authentication failed")
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrServer     = errors.New("upstream server error")
	ErrNetwork    = errors.New("network failure")
	ErrTimeout    = errors.New("request timed out")
	ErrConflict   = errors.New("already exists")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
