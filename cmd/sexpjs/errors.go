package main

import "errors"

// Sentinel errors for command operations
var (
	ErrConfigExists         = errors.New("configuration file already exists")
	ErrEnvelopeRequiresJSON = errors.New("--envelope is only supported with --format json")
)
