// Package errors provides error handling for opticgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging failed generator runs
//   - Error wrapping and context
//   - Hints surfaced in build-failure diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrMissingOutDir) {
//	    // handle broken build environment
//	}
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
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Fatal environment conditions. Every one of these aborts the whole run:
// they signal a broken build environment, not a transient failure, so the
// caller never retries.
var (
	// ErrMissingOutDir indicates the output-directory environment variable
	// is not set. The generator has nowhere to persist its output.
	ErrMissingOutDir = New("output directory not configured")

	// ErrSourceRead indicates a workspace source file could not be read.
	// Partial generation would silently drop optics, so this is fatal.
	ErrSourceRead = New("source file unreadable")

	// ErrOutputWrite indicates the generated file could not be persisted.
	// The next run's incremental comparison depends on the persisted copy.
	ErrOutputWrite = New("generated output not writable")
)
