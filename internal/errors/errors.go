// Package errors holds sentinel errors shared across fieldcheck packages.
package errors

import "errors"

var (
	// ErrUnknownMethod is returned when the engine is asked to dispatch a method it does not have.
	ErrUnknownMethod = errors.New("unknown engine method")

	// ErrInvalidArgument is returned when a dispatched method receives arguments of the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfigNotFound is returned when no fieldcheck.yaml can be located.
	ErrConfigNotFound = errors.New("fieldcheck.yaml not found")

	// ErrNoFields is returned when a configuration declares no fields to validate.
	ErrNoFields = errors.New("no fields configured")

	// ErrUnsupportedSource is returned for a source kind the CLI cannot open.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrValidationFailed is returned by commands when at least one record is invalid.
	ErrValidationFailed = errors.New("validation failed")
)
