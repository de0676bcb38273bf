package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgValidation         = "validation failed"
	ErrMsgInvalidOptionGroup = "invalid option group"

	// Backup errors
	ErrMsgImport = "invalid backup document"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrValidation marks a rejected entry insert/replace: a required field is
	// empty or an integer field is not an integer.
	ErrValidation = errors.New(ErrMsgValidation)

	// ErrInvalidOptionGroup is returned for groups outside {line, shift}.
	ErrInvalidOptionGroup = errors.New(ErrMsgInvalidOptionGroup)

	// ErrImport marks a malformed or semantically invalid backup document.
	// The store is never mutated when this error is returned.
	ErrImport = errors.New(ErrMsgImport)
)
