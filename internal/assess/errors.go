package assess

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions blocks session creation for an empty definition.
	ErrNoQuestions = errors.New("assessment has no questions")
	// ErrLimitExceeded blocks session creation when attempts are exhausted.
	ErrLimitExceeded = errors.New("attempt limit exceeded")
	// ErrSessionActive blocks creation of a second concurrent session.
	ErrSessionActive = errors.New("an assessment session is already in progress")
	// ErrNoSession means there is neither a live session nor a snapshot.
	ErrNoSession = errors.New("no assessment session")
	// ErrNotActive rejects answer/advance outside the Active state.
	ErrNotActive = errors.New("session is not active")
	// ErrAlreadyStarted rejects a second start on a running session.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrUnanswered rejects advance before the current question is answered.
	ErrUnanswered = errors.New("current question has not been answered")
	// ErrLessonLocked means the gating sequence has not reached this lesson.
	ErrLessonLocked = errors.New("lesson is locked")
)

// NetworkError wraps a transient collaborator failure (attempt submit,
// history fetch). Finalize leaves the snapshot intact on a NetworkError so
// the next resume retries.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

func netErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &NetworkError{Op: op, Err: err}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
