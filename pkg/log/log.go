// Package log provides the small leveled logger shared by the simulator and
// its driver.
package log

import (
	"fmt"
	"io"
	"os"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	// DebugEnabled reports whether Debugf writes anything, so callers can
	// skip building expensive arguments.
	DebugEnabled() bool
}

type logger struct {
	w     io.Writer
	debug bool
}

// New returns a logger writing to w. Debug lines are dropped unless debug
// is set.
func New(w io.Writer, debug bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &logger{w: w, debug: debug}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[ERROR]\t"+format+"\n", args...)
}

func (l *logger) DebugEnabled() bool {
	return l.debug
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.w, "[DEBUG]\t"+format+"\n", args...)
}
