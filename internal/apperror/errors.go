// Package apperror defines the typed errors shared by the wage-data pipeline and
// the ratio calculator. Row- and tier-scoped errors are meant to be contained by
// their caller; only InvalidInputError is shown to end users.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue is returned when a cell or token carries no value at all.
	ErrEmptyValue = errors.New("empty value")

	// ErrNotFound is returned when a source (file, cache key) does not exist.
	ErrNotFound = errors.New("not found")
)

// ParseError represents a failure to parse a single value, usually one table row.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SourceUnavailableError reports that a whole data source could not be used.
type SourceUnavailableError struct {
	Source string
	Reason string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %s", e.Source, e.Reason)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// InvalidInputError is a user-facing validation failure.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a snapshot read or write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for '%s': %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
