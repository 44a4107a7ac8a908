package apu

import (
	"github.com/bdwalton/nescycle/counter"
)

type noise struct {
	env    Envelope
	length LengthCounter

	shortMode bool   // feedback from bit 6 rather than bit 1
	shift     uint16 // 15 bit LFSR
	rate      uint8
	timer     *counter.Counter // clocked every CPU cycle
}

func newNoise() *noise {
	n := &noise{shift: 1}
	n.timer = counter.New(noisePeriods[0]-1, n.advance)
	return n
}

func (n *noise) advance() {
	tap := uint(1)
	if n.shortMode {
		tap = 6
	}
	fb := (n.shift ^ n.shift>>tap) & 0x01
	n.shift = n.shift>>1 | fb<<14
}

func (n *noise) write(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0:
		n.length.Halt = val&0x20 != 0
		n.env.write(val)
	case 2:
		n.shortMode = val&0x80 != 0
		n.rate = val & 0x0F
		n.timer.SetReload(noisePeriods[n.rate] - 1)
	case 3:
		n.length.load(val >> 3)
		n.env.Start = true
	}
}

func (n *noise) output() uint8 {
	if n.length.Value == 0 || n.shift&0x01 != 0 {
		return 0
	}
	return n.env.output()
}

// NoiseState is the saved form of the noise channel.
type NoiseState struct {
	Envelope  Envelope
	Length    LengthCounter
	ShortMode bool
	Shift     uint16
	Rate      uint8
	Timer     counter.State
}

func (n *noise) save() NoiseState {
	return NoiseState{n.env, n.length, n.shortMode, n.shift, n.rate, n.timer.State()}
}

func (n *noise) load(s NoiseState) {
	n.env, n.length = s.Envelope, s.Length
	n.shortMode, n.shift, n.rate = s.ShortMode, s.Shift&0x7FFF, s.Rate&0x0F
	n.timer.SetState(s.Timer)
}
