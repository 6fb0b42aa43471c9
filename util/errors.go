package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Hash path errors
	ErrInvalidHashPath = errors.New("invalid hash path format")

	// Fixture errors
	ErrRootNotSet   = errors.New(RootEnvVar + " is not set")
	ErrEmptyFixture = errors.New("fixture file contains no strings")

	// Flag value errors
	ErrInvalidYesNoOnce = errors.New("value must be one of yes, no, once")
)
