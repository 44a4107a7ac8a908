package apu

import (
	"github.com/bdwalton/nescycle/counter"
)

type triangle struct {
	length LengthCounter

	// control doubles as the length counter halt flag and keeps the
	// linear counter reloading.
	control      bool
	reloadLinear bool
	linearReload uint8
	linear       uint8

	step   uint8
	period uint16
	timer  *counter.Counter // clocked every CPU cycle
}

func newTriangle() *triangle {
	t := &triangle{}
	t.timer = counter.New(0, t.advance)
	return t
}

// advance steps the sequencer only while both counters are non-zero.
// The channel then holds its last level rather than dropping to 0.
func (t *triangle) advance() {
	if t.length.Value > 0 && t.linear > 0 {
		t.step = (t.step + 1) & 0x1F
	}
}

func (t *triangle) write(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0:
		t.control = val&0x80 != 0
		t.length.Halt = t.control
		t.linearReload = val & 0x7F
	case 2:
		t.setPeriod(t.period&0x0700 | uint16(val))
	case 3:
		t.setPeriod(t.period&0x00FF | uint16(val&0x07)<<8)
		t.length.load(val >> 3)
		t.reloadLinear = true
	}
}

func (t *triangle) setPeriod(v uint16) {
	t.period = v
	t.timer.SetReload(int(v))
}

// clockLinear runs on every quarter frame.
func (t *triangle) clockLinear() {
	if t.reloadLinear {
		t.linear = t.linearReload
	} else if t.linear > 0 {
		t.linear--
	}
	if !t.control {
		t.reloadLinear = false
	}
}

func (t *triangle) output() uint8 {
	return triangleTable[t.step]
}

// TriangleState is the saved form of the triangle channel.
type TriangleState struct {
	Length                LengthCounter
	Control, ReloadLinear bool
	LinearReload, Linear  uint8
	Step                  uint8
	Period                uint16
	Timer                 counter.State
}

func (t *triangle) save() TriangleState {
	return TriangleState{t.length, t.control, t.reloadLinear, t.linearReload, t.linear, t.step, t.period, t.timer.State()}
}

func (t *triangle) load(s TriangleState) {
	t.length = s.Length
	t.control, t.reloadLinear = s.Control, s.ReloadLinear
	t.linearReload, t.linear = s.LinearReload, s.Linear
	t.step, t.period = s.Step&0x1F, s.Period
	t.timer.SetState(s.Timer)
}
