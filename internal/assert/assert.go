// Package assert provides fatal assertion helpers for programming errors.
//
// Assertions are not error handling. A failed assertion means the program has
// reached a state its authors considered impossible, so it is logged and then
// raised as a panic carrying an *AssertionError. Recoverable conditions such as
// network failures or bad HTTP statuses must be returned as errors instead.
package assert

import "go.uber.org/zap"

const defaultDescription = "assertion failed"

// AssertionError is the panic value raised by a failed assertion.
type AssertionError struct {
	Description string
}

func (e *AssertionError) Error() string {
	return e.Description
}

// That panics with an *AssertionError when cond is false. The optional
// description becomes the error message; only the first one is used.
func That(cond bool, description ...string) {
	if cond {
		return
	}
	desc := defaultDescription
	if len(description) > 0 {
		desc = description[0]
		zap.L().Error("assertion failed: " + desc)
	} else {
		zap.L().Error("assertion failed")
	}
	panic(&AssertionError{Description: desc})
}

// Unreachable marks code paths that must never execute.
func Unreachable() {
	That(false, "unreachable code reached")
}
