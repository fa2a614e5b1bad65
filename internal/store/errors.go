/* Copyright (c) 2021 David Bulkow */

package store

import (
	"errors"
	"fmt"

	. "github.com/dbulkow/roomreserve/api"
)

var (
	ErrValidation = errors.New("missing or invalid field")
	ErrOrdering   = errors.New("end must be after start")
	ErrOverlap    = errors.New("reservation range conflict")
	ErrNotFound   = errors.New("reservation not found")
)

// OverlapError reports the existing reservation a candidate collided with.
type OverlapError struct {
	Conflict Reservation
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v with %s", ErrOverlap, e.Conflict)
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }

// PersistError wraps a backing store failure. The mutation that caused it has
// already been undone.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}
