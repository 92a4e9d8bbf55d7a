package sor

import "errors"

var (
	// ErrUnknownColumn is returned when a query names a column at or beyond
	// the length of the inferred schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrOffsetOutOfRange is returned when the requested row is not reached
	// within the configured window.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)
