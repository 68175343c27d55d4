package main

import "github.com/pkg/errors"

// Process exit statuses. They are only returned when --fail-on-error is set.
const (
	exitOK         = 0
	exitOther      = 1
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
	exitDBWrite    = 5
)

// cliError pins an exit status to an error while keeping it unwrappable.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classified reports the status attached by the outermost withCode in the chain.
func classified(err error) (int, bool) {
	var ce *cliError
	if !errors.As(err, &ce) {
		return 0, false
	}
	return ce.code, true
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if code, ok := classified(err); ok {
		return code
	}
	return exitOther
}
