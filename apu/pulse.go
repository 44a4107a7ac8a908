package apu

import (
	"github.com/bdwalton/nescycle/counter"
)

type pulse struct {
	env    Envelope
	length LengthCounter
	sweep  Sweep

	// Pulse 1 negates its sweep in ones' complement, pulse 2 in
	// two's complement.
	onesComplement bool

	duty, step uint8
	period     uint16
	timer      *counter.Counter // clocked every other CPU cycle
}

func newPulse(onesComplement bool) *pulse {
	p := &pulse{onesComplement: onesComplement}
	p.timer = counter.New(0, p.advance)
	return p
}

func (p *pulse) advance() {
	p.step = (p.step + 1) & 0x07
}

func (p *pulse) write(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0:
		p.duty = val >> 6
		p.length.Halt = val&0x20 != 0
		p.env.write(val)
	case 1:
		p.sweep.write(val)
	case 2:
		p.setPeriod(p.period&0x0700 | uint16(val))
	case 3:
		p.setPeriod(p.period&0x00FF | uint16(val&0x07)<<8)
		p.length.load(val >> 3)
		p.step = 0
		p.env.Start = true
	}
}

func (p *pulse) setPeriod(v uint16) {
	p.period = v
	p.timer.SetReload(int(v))
}

// target is the period the sweep unit is heading for.
func (p *pulse) target() uint16 {
	delta := p.period >> p.sweep.Shift
	if !p.sweep.Negate {
		return p.period + delta
	}
	if p.onesComplement {
		delta++
	}
	if delta > p.period {
		return 0
	}
	return p.period - delta
}

// muted applies whether or not the sweep is enabled.
func (p *pulse) muted() bool {
	return p.period < 8 || p.target() > 0x7FF
}

func (p *pulse) clockSweep() {
	s := &p.sweep
	if s.Divider == 0 && s.Enabled && s.Shift > 0 && !p.muted() {
		p.setPeriod(p.target())
	}
	if s.Divider == 0 || s.Reload {
		s.Divider = s.Period
		s.Reload = false
		return
	}
	s.Divider--
}

func (p *pulse) output() uint8 {
	if p.length.Value == 0 || p.muted() || dutyTable[p.duty][p.step] == 0 {
		return 0
	}
	return p.env.output()
}

// PulseState is the saved form of a pulse channel.
type PulseState struct {
	Envelope   Envelope
	Length     LengthCounter
	Sweep      Sweep
	Duty, Step uint8
	Period     uint16
	Timer      counter.State
}

func (p *pulse) save() PulseState {
	return PulseState{p.env, p.length, p.sweep, p.duty, p.step, p.period, p.timer.State()}
}

func (p *pulse) load(s PulseState) {
	p.env, p.length, p.sweep = s.Envelope, s.Length, s.Sweep
	p.duty, p.step, p.period = s.Duty&0x03, s.Step&0x07, s.Period
	p.timer.SetState(s.Timer)
}
