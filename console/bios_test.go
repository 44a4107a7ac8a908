package console

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func runBIOS(t *testing.T, m *Machine, script string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := m.BIOS(ctx, strings.NewReader(script), &out); err != nil {
		t.Fatalf("BIOS: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestBIOSScript(t *testing.T) {
	m := newCountingMachine(t)
	out := runBIOS(t, m, "s\ni\nm 8000 8003\nb 8006\nr\nt\nh\nbogus\nb zz\nq\ns\n")

	for _, want := range []string{
		"PC=0x8001",
		"0x8001: a9 80  LDA #$80",
		"0x8000: 0x78 0x8001: 0xa9 0x8002: 0x80 0x8003: 0x8d",
		"breakpoint at 0x8006",
		"  3  b 8006",
		`unknown command "bogus"`,
		`bad address "zz"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
	// Nothing after quit runs.
	if pc := m.CPU().PC(); pc != 0x8006 {
		t.Errorf("Got PC 0x%04x, want 0x8006", pc)
	}
}

func TestBIOSFrames(t *testing.T) {
	m := newCountingMachine(t)
	out := runBIOS(t, m, "f 2\nr 1\n")

	if m.Frames() != 3 {
		t.Errorf("Got %d frames, want 3", m.Frames())
	}
	if !strings.Contains(out, "frame 2") || !strings.Contains(out, "frame 3") {
		t.Errorf("output is missing frame counts:\n%s", out)
	}
}

func TestBIOSSetPC(t *testing.T) {
	m := newCountingMachine(t)
	runBIOS(t, m, "p 8010\ns\n")

	// INC $20 ran from the new PC.
	if pc := m.CPU().PC(); pc != 0x8012 || m.Peek(0x20) != 1 {
		t.Errorf("Got PC 0x%04x, counter %d, want 0x8012 and 1", pc, m.Peek(0x20))
	}
}

func TestBIOSReplay(t *testing.T) {
	m := newCountingMachine(t)
	out := runBIOS(t, m, "s\n!0\n!1\n!9\n")

	if pc := m.CPU().PC(); pc != 0x8003 {
		t.Errorf("Got PC 0x%04x after replaying a step, want 0x8003", pc)
	}
	for _, want := range []string{"is itself a replay", `no history entry "9"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestBIOSSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	m := newCountingMachine(t)
	runBIOS(t, m, "f\nsave "+path+"\nf 3\nload "+path+"\n")

	if m.Frames() != 1 {
		t.Errorf("Got %d frames after loading, want 1", m.Frames())
	}
	out := runBIOS(t, m, "load "+filepath.Join(t.TempDir(), "missing")+"\nsave\n")
	if strings.Count(out, "error:") != 2 {
		t.Errorf("Got output %q, want two errors", out)
	}
}

func TestBIOSErrors(t *testing.T) {
	m, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.BIOS(context.Background(), strings.NewReader("q\n"), &bytes.Buffer{}); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("Got %v with no cartridge, want %v", err, ErrNoCartridge)
	}

	m = newCountingMachine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// r with no limit and no breakpoints only stops for ctx.
	if err := m.BIOS(ctx, strings.NewReader("r\n"), &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Got %v, want %v", err, context.Canceled)
	}
}
