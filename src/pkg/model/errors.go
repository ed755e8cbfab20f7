package model

import (
	"errors"
	"fmt"
)

// Error kinds reported by the catalog, the query engine and the user registry.
// Every structured error below unwraps to one of these.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnknownUser          = errors.New("unknown user")
	ErrUserExists           = errors.New("user already exists")
	ErrAlreadyInList        = errors.New("already in list")
	ErrNotInList            = errors.New("not in list")
	ErrInvalidRange         = errors.New("invalid range")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrInvalidRuntimeFormat = errors.New("invalid runtime format")
	ErrDatasetUnavailable   = errors.New("dataset unavailable")
)

// InputError reports a malformed username, password or film index.
type InputError struct {
	Field      string
	Constraint string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// UserError reports a username that is missing from or already present in the registry.
type UserError struct {
	Username string
	Err      error
}

func (e *UserError) Error() string {
	if errors.Is(e.Err, ErrUserExists) {
		return fmt.Sprintf("user '%s' already exists", e.Username)
	}
	return fmt.Sprintf("user '%s' doesn't exist", e.Username)
}

func (e *UserError) Unwrap() error { return e.Err }

// RangeError reports a bounded filter whose lower bound exceeds its upper bound,
// or a bound outside the domain of the dimension.
type RangeError struct {
	Dimension string
	Reason    string
}

func (e *RangeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s range: 'from' must not be greater than 'to'", e.Dimension)
	}
	return fmt.Sprintf("invalid %s range: %s", e.Dimension, e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// CategoryError reports a categorical filter value that no film in the catalog carries.
type CategoryError struct {
	Dimension string
	Value     string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown %s '%s'", e.Dimension, e.Value)
}

func (e *CategoryError) Unwrap() error { return ErrUnknownCategory }

// ColumnError reports an unknown sort column.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("unknown column '%s'", e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrUnknownColumn }

// ListError reports a list membership violation. Err is ErrAlreadyInList or ErrNotInList,
// List names the list the index was found in (or missing from).
type ListError struct {
	Username string
	Index    int
	List     ListKind
	Err      error
}

func (e *ListError) Error() string {
	if errors.Is(e.Err, ErrAlreadyInList) {
		return fmt.Sprintf("film %d is already in the %s list of '%s'", e.Index, e.List, e.Username)
	}
	return fmt.Sprintf("film %d is not in the %s list of '%s'", e.Index, e.List, e.Username)
}

func (e *ListError) Unwrap() error { return e.Err }

// RuntimeFormatError reports runtime text that could not be parsed.
type RuntimeFormatError struct {
	Input string
}

func (e *RuntimeFormatError) Error() string {
	return fmt.Sprintf("cannot parse runtime '%s'", e.Input)
}

func (e *RuntimeFormatError) Unwrap() error { return ErrInvalidRuntimeFormat }

// DatasetError reports a missing or malformed dataset file. Line is 0 when the
// failure is not tied to a row.
type DatasetError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *DatasetError) Error() string {
	msg := fmt.Sprintf("dataset '%s' unavailable", e.Path)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DatasetError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDatasetUnavailable}
	}
	return []error{ErrDatasetUnavailable, e.Err}
}
