package commands

import (
	"errors"
	"strings"

	"github.com/pixil98/go-fishery/internal/display"
	"github.com/pixil98/go-fishery/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// gameError turns a rejected game action into a UserError. Anything that is
// not a game rule violation is returned unchanged.
func gameError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrItemNotFound):
		return NewUserError("You have no such fish.")
	case errors.Is(err, game.ErrObjectiveNotFound):
		return NewUserError("You have no mission by that name.")
	}
	for _, sentinel := range []error{game.ErrInvalidOperation, game.ErrRejectedTransition, game.ErrCapacityExceeded} {
		if !errors.Is(err, sentinel) {
			continue
		}
		msg := err.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		return NewUserError(display.Capitalize(msg) + ".")
	}
	return err
}
