// Package common provides shared constants, types, and utilities
// used across the SSHFS Manager application.
package common

import "errors"

// Sentinel errors for profile and mount operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Profile errors.
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile data")

	// Mount errors.
	ErrMountFailed  = errors.New("mount failed")
	ErrToolNotFound = errors.New("mount tool not found")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("operation cancelled")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
