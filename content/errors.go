package content

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotDisposed is returned when a disposed slot is asked to show
	// something.
	ErrSlotDisposed = errors.New("content: slot is disposed")

	// ErrManagerDisposed is returned when a slot is created on a disposed
	// manager.
	ErrManagerDisposed = errors.New("content: manager is disposed")

	// ErrUnitActive is returned when the active unit of a slot is shown
	// again.
	ErrUnitActive = errors.New("content: unit is already active")

	// ErrUnitOwned is returned when a unit that already belongs to a slot is
	// shown in a slot.
	ErrUnitOwned = errors.New("content: unit is owned by a slot")

	// ErrNilUnit is returned when a nil pointer wrapped in a Unit is shown.
	// Only an untyped nil means showing nothing.
	ErrNilUnit = errors.New("content: unit is a nil pointer")

	// ErrDuplicateSlot is returned when a slot ID is used twice in a manager.
	ErrDuplicateSlot = errors.New("content: duplicated slot id")

	// ErrEmptySlotID is returned when a slot is created without an ID.
	ErrEmptySlotID = errors.New("content: slot id must be non-empty")

	// ErrNoContentObject is reported when a loaded unit has no content object
	// to attach.
	ErrNoContentObject = errors.New("content: loaded unit has no content object")
)

// InvalidSequenceError reports an operation on a unit in a state that does not
// permit it.
type InvalidSequenceError struct {
	Unit  string
	Op    string
	State State
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf(
		"content: unit %s cannot %s while %s", e.Unit, e.Op, e.State,
	)
}

// PhaseError reports that a unit failed during one of its phases.
type PhaseError struct {
	Unit  string
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf(
		"content: unit %s failed during %s: %v", e.Unit, e.Phase, e.Err,
	)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
