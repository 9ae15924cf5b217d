package game

import "fmt"

// GameplayError is the error type for every rule violation: wrong-phase
// operations, invalid ids, bad bets. Drivers print it and carry on.
type GameplayError struct {
	msg string
	err error
}

func (e *GameplayError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *GameplayError) Unwrap() error { return e.err }

// Errorf creates a GameplayError from a format string.
func Errorf(format string, args ...any) *GameplayError {
	return &GameplayError{msg: fmt.Sprintf(format, args...)}
}

// wrapf wraps a cause with rule-violation context.
func wrapf(err error, format string, args ...any) *GameplayError {
	return &GameplayError{msg: fmt.Sprintf(format, args...), err: err}
}
