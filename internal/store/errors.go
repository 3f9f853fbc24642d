package store

import (
	"fmt"
	"strings"
)

// ValidationError: a field value that can never be stored (negative amount,
// empty required text, invalid date, unknown currency).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError: a branch name that is already registered.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q already exists", e.Name)
}

// NotFoundError: an id or position that does not match any stored record.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

// SchemaError: a bulk-import header that is missing required columns. The
// import is rejected as a whole and the missing names are reported exactly.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}
