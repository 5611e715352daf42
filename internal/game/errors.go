package game

import (
	"errors"
	"fmt"
)

var (
	// ErrRejectedTransition is returned when an action is not valid for the
	// current encounter state. No state changes.
	ErrRejectedTransition = errors.New("rejected transition")
	// ErrCapacityExceeded is returned when the inventory has no free slot.
	ErrCapacityExceeded = errors.New("inventory capacity exceeded")
	// ErrInvalidOperation is returned when an item or objective operation is
	// not valid in its current lifecycle state. No state changes.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConfigurationFault marks catalog problems that must stop startup.
	ErrConfigurationFault = errors.New("configuration fault")

	ErrItemNotFound      = fmt.Errorf("%w: item not found", ErrInvalidOperation)
	ErrObjectiveNotFound = fmt.Errorf("%w: objective not found", ErrInvalidOperation)
)
