// Package panicerr runs functions such that a panic, or a call to
// runtime.Goexit, comes back as an ordinary error.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, returning its error, or an error
// describing how it exited abnormally.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			// nothing sent: f neither returned nor panicked
			select {
			case errch <- exitError(name):
			default:
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- panicError{name, e, debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "panicked: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v panicked: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", pe.stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsExit returns true if err indicates a recovered runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace of a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
