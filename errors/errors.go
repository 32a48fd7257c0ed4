// Package errors provides error handling for rpcgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	if err := scan(); err != nil {
//	    return errors.Wrap(err, "failed to scan api directory")
//	}
//
//	return errors.WithHint(errors.Wrap(ErrEmptyInput, "no declarations"),
//	    "check the [input] include patterns in rpc.config.toml")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinel errors for rpcgen. Wrap them with errors.Wrap() to add context
// while keeping errors.Is() checks working.
var (
	// ErrNotFound indicates a file or directory does not exist
	ErrNotFound = New("not found")

	// ErrInvalidConfig indicates rpc.config.toml holds an unusable value
	ErrInvalidConfig = New("invalid configuration")

	// ErrEmptyInput indicates a scan found no source files or no declarations
	ErrEmptyInput = New("no declarations found")

	// ErrFrontend indicates a source file could not be parsed
	ErrFrontend = New("parse failure")

	// ErrUnknownRenameRule indicates a rename_all value outside the serde set
	ErrUnknownRenameRule = New("unknown rename rule")

	// ErrOutOfDate indicates generated output on disk differs from a fresh run
	ErrOutOfDate = New("generated output is out of date")

	// ErrAlreadyExists indicates a file would be overwritten without --force
	ErrAlreadyExists = New("already exists")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsFrontendError checks if an error is or wraps ErrFrontend
func IsFrontendError(err error) bool {
	return err != nil && Is(err, ErrFrontend)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
