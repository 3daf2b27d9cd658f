package core

import "errors"

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitBadDirectory = 2
	ExitBadSerials   = 3
	ExitNoSerials    = 4
	ExitInvalidFile  = 5
)

// ExitError carries the process status a fatal condition maps to. Err may be
// nil when the condition has nothing to report beyond the status.
type ExitError struct {
	Code int
	Err  error
}

// Exit wraps err with the given process status.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process status for err: 0 for nil, the carried code for
// an [ExitError] anywhere in the chain and [ExitFailure] otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}

	return ExitFailure
}

// HasMessage reports whether err has anything worth printing.
func HasMessage(err error) bool {
	return err != nil && err.Error() != ""
}
