package engine

import "errors"

var (
	ErrInvalidOption     = errors.New("engine: unknown mechanism")
	ErrInvalidPriority   = errors.New("engine: priority weight must be a finite number")
	ErrDuplicateInterval = errors.New("engine: slot already has a recurring interval")
	ErrNoInterval        = errors.New("engine: slot has no recurring interval")
)
