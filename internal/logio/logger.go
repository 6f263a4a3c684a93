// Package logio provides the leveled log stream used by the command line
// interpreter, and a line oriented io.Writer that feeds into it.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes lines like "level: message" to Output, and remembers
// whether any errors were logged.
type Logger struct {
	sync.Mutex
	Output io.Writer

	// Levels, if non-nil, suppresses any level mapped to false.
	Levels map[string]bool

	buf      bytes.Buffer
	exitCode int
}

// ExitCode returns a code to pass to os.Exit: non-zero if any error was
// logged, or if writing a log line failed.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%+v", err)
	}
}

// Errorf is like Printf("ERROR", ...), but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf("ERROR", mess, args...)
	if log.exitCode == 0 {
		log.exitCode = 1
	}
}

// Printf logs a line at the given level, unless Levels suppresses it.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if on, listed := log.Levels[level]; listed && !on {
		return
	}
	if err := log.printf(level, mess, args...); err != nil {
		log.exitCode = 2
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.Output == nil {
		log.buf.Reset()
		return nil
	}
	_, err := log.buf.WriteTo(log.Output)
	log.buf.Reset()
	return err
}
