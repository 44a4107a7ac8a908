package apu

// Envelope is the volume unit shared by the pulse and noise channels.
// It decays from 15 to 0 at a rate set by Volume, or outputs Volume
// directly when Constant is set.
type Envelope struct {
	Start, Loop, Constant  bool
	Volume, Divider, Decay uint8
}

// write takes the low 6 bits of a channel's first register.
func (e *Envelope) write(val uint8) {
	e.Loop = val&0x20 != 0
	e.Constant = val&0x10 != 0
	e.Volume = val & 0x0F
}

// clock runs on every quarter frame.
func (e *Envelope) clock() {
	if e.Start {
		e.Start = false
		e.Decay = 15
		e.Divider = e.Volume
		return
	}
	if e.Divider > 0 {
		e.Divider--
		return
	}
	e.Divider = e.Volume
	switch {
	case e.Decay > 0:
		e.Decay--
	case e.Loop:
		e.Decay = 15
	}
}

func (e *Envelope) output() uint8 {
	if e.Constant {
		return e.Volume
	}
	return e.Decay
}

// LengthCounter silences a channel when it runs out. Disabled
// channels hold it at 0.
type LengthCounter struct {
	Enabled, Halt bool
	Value         uint8
}

func (l *LengthCounter) load(idx uint8) {
	if l.Enabled {
		l.Value = lengthTable[idx&0x1F]
	}
}

// clock runs on every half frame.
func (l *LengthCounter) clock() {
	if l.Value > 0 && !l.Halt {
		l.Value--
	}
}

func (l *LengthCounter) setEnabled(on bool) {
	l.Enabled = on
	if !on {
		l.Value = 0
	}
}

// Sweep slides a pulse channel's period up or down every few half
// frames.
type Sweep struct {
	Enabled, Negate, Reload bool
	Period, Shift, Divider  uint8
}

func (s *Sweep) write(val uint8) {
	s.Enabled = val&0x80 != 0
	s.Period = val >> 4 & 0x07
	s.Negate = val&0x08 != 0
	s.Shift = val & 0x07
	s.Reload = true
}
