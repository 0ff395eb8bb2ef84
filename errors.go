package sexpjs

import "errors"

// Common errors used throughout the sexpjs package
var (
	// ErrMissingArgument is returned when the driver is invoked without an input path.
	ErrMissingArgument = errors.New("missing input path argument")
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrInputFileNotExist indicates the input path does not exist.
	ErrInputFileNotExist = errors.New("input file does not exist")
)
