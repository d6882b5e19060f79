package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is informational: the section has no quiz lessons and the
	// session ends in StateEmpty.
	ErrNoContent         = errors.New("quiz has no questions")
	ErrLoadFailure       = errors.New("failed to load quiz content")
	ErrPersistFailure    = errors.New("failed to persist quiz attempt")
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrInvalidOption     = errors.New("invalid option index")
)

// TransitionError reports an operation rejected in the session's current state.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while quiz is %s", e.Op, e.State)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
