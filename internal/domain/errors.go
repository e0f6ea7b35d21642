package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutsideEpoch is returned when a requested time lies outside a location's valid epoch.
	ErrOutsideEpoch = errors.New("outside valid epoch")
	// ErrUnknownDatum is returned when a requested datum is not defined for a location.
	ErrUnknownDatum = errors.New("unknown datum")
	// ErrInvalidEpoch is returned when a location's epoch start is after its end.
	ErrInvalidEpoch = errors.New("invalid epoch")
	// ErrInvalidStep is returned for a non-positive sampling step.
	ErrInvalidStep = errors.New("invalid step")
)

// RangeError reports a usage error: an argument outside what a location supports.
type RangeError struct {
	Op     string
	Reason string
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
