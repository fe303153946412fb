package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFilename marks result files whose name cannot be decoded
	ErrUnrecognizedFilename = errors.New("unrecognized filename")

	// ErrMissingRequiredColumn marks tables lacking a column an operation needs
	ErrMissingRequiredColumn = errors.New("missing required column")

	// ErrEmptyResult marks a filter chain that produced no rows. It is
	// recoverable: callers skip the output and carry on.
	ErrEmptyResult = errors.New("empty result")
)

// UnrecognizedFilenameError describes why a filename was rejected
type UnrecognizedFilenameError struct {
	Name   string
	Reason string
}

func (e *UnrecognizedFilenameError) Error() string {
	return fmt.Sprintf("unrecognized filename %q: %s", e.Name, e.Reason)
}

func (e *UnrecognizedFilenameError) Unwrap() error {
	return ErrUnrecognizedFilename
}

// MissingColumnError names the absent column
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("%s: missing required column %q", e.Table, e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingRequiredColumn
}

// EmptyResultError says which selection came back empty
type EmptyResultError struct {
	What string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no data for %s", e.What)
}

func (e *EmptyResultError) Unwrap() error {
	return ErrEmptyResult
}

// NewEmptyResult builds an EmptyResultError
func NewEmptyResult(format string, args ...interface{}) error {
	return &EmptyResultError{What: fmt.Sprintf(format, args...)}
}
