// Package logger provides the logging sink handed to each emulated
// unit. The core never logs unless a Logger is supplied.
package logger

import (
	"fmt"
	"io"
	"log"
)

// Logger receives tagged log lines. The tag names the unit emitting
// the line, eg "cpu" or "mapper".
type Logger interface {
	Logf(tag, format string, args ...interface{})
}

type discard struct{}

func (discard) Logf(string, string, ...interface{}) {}

// Discard drops everything.
var Discard Logger = discard{}

// Or returns l, or Discard when l is nil.
func Or(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}

type stdLogger struct {
	l *log.Logger
}

// New returns a Logger writing timestamped lines to w.
func New(w io.Writer) Logger {
	return &stdLogger{l: log.New(w, "", log.Ltime|log.Lmicroseconds)}
}

func (s *stdLogger) Logf(tag, format string, args ...interface{}) {
	s.l.Printf("%s: %s", tag, fmt.Sprintf(format, args...))
}
