package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is wrapped when an insert violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
