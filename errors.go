package main

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	exitSuccess  = 0
	exitNotFound = 1
	exitArgs     = 2
	exitSys      = 3
)

// ErrNoInterface is returned when resolution completed but did not find
// exactly one eligible interface.
var ErrNoInterface = errors.New("no eligible interface")

// ArgError reports malformed command line input.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgError{Msg: fmt.Sprintf(format, args...)}
}

// EligibilityError is returned when an explicitly named interface cannot
// be used for ARP. It aborts resolution.
type EligibilityError struct {
	Name   string
	Reason string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("interface %q is %s", e.Name, e.Reason)
}

// SysError wraps a failed system operation.
type SysError struct {
	Op  string
	Err error
}

func (e *SysError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *SysError) Unwrap() error { return e.Err }

func sysError(op string, err error) error {
	return &SysError{Op: op, Err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}

	var argErr *ArgError
	var eligErr *EligibilityError
	switch {
	case errors.As(err, &argErr), errors.As(err, &eligErr):
		return exitArgs
	default:
		return exitSys
	}
}
