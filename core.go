package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gofunge/internal/fileinput"
	"github.com/jcorbin/gofunge/internal/flushio"
)

// Core holds the host facing state of a VM: its input queue, its output
// stream, and its log functions.
type Core struct {
	logging
	in      fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close closes any inputs or outputs handed to the VM that need closing.
func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	core.closers = nil
	return err
}

func (core *Core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		if err == nil {
			core.logf("#", "halt")
		} else {
			core.logf("#", "halt error: %v", err)
		}
	}()

	if err == nil {
		err = errHalt
	}
	panic(haltError{err})
}

func (core *Core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

var errHalt = errors.New("normal halt")

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn  func(mess string, args ...interface{})
	warnfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

func (log *logging) warnf(mess string, args ...interface{}) {
	if log.warnfn != nil {
		log.warnfn(mess, args...)
	}
}
