package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Logf("cpu", "jam at %04x", 0x8000)

	if got := buf.String(); !strings.HasSuffix(got, "cpu: jam at 8000\n") {
		t.Errorf("Got %q, want suffix %q", got, "cpu: jam at 8000\n")
	}
}

func TestOr(t *testing.T) {
	if Or(nil) != Discard {
		t.Errorf("Or(nil) didn't return Discard")
	}

	l := New(&bytes.Buffer{})
	if Or(l) != l {
		t.Errorf("Or(l) didn't return l")
	}
}
