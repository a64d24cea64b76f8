package services

import (
	"errors"
	"strings"
)

// Expected outcomes of service calls. Handlers map these to HTTP statuses;
// any other error is an unexpected store fault and surfaces as a server error.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// isUniqueViolation reports whether the error is a UNIQUE constraint
// failure from the SQLite store, i.e. a lost race or duplicate create.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether the error is a FOREIGN KEY
// constraint failure, i.e. a reference to a row that does not exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
