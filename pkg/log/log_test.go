package log

import (
	"bytes"
	"testing"
)

func TestLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	if !l.DebugEnabled() {
		t.Error("DebugEnabled with debug on")
	}

	l.Infof("loaded %d bytes", 3)
	l.Errorf("bad %s", "thing")
	l.Debugf("pc=%04X", 0x100)

	want := "[INFO]\tloaded 3 bytes\n[ERROR]\tbad thing\n[DEBUG]\tpc=0100\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestLoggerDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	if l.DebugEnabled() {
		t.Error("DebugEnabled with debug off")
	}
	l.Debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output with debug off: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("x")
	l.Errorf("y")
	l.Debugf("z")
	if l.DebugEnabled() {
		t.Error("null logger reports debug enabled")
	}
}
