package apu

import (
	"fmt"

	"github.com/bdwalton/nescycle/counter"
)

// State is a snapshot of the APU and all five channels.
type State struct {
	Pulse1, Pulse2 PulseState
	Triangle       TriangleState
	Noise          NoiseState
	DMC            DMCState

	Cycle                       uint64
	FrameCycle                  int
	FiveStep, Inhibit, FrameIRQ bool
	Divider, Sampler            counter.State
}

func (a *APU) SaveState() State {
	return State{
		Pulse1:     a.pulse1.save(),
		Pulse2:     a.pulse2.save(),
		Triangle:   a.triangle.save(),
		Noise:      a.noise.save(),
		DMC:        a.dmc.save(),
		Cycle:      a.cycle,
		FrameCycle: a.frameCycle,
		FiveStep:   a.fiveStep,
		Inhibit:    a.inhibit,
		FrameIRQ:   a.frameIRQ,
		Divider:    a.timer.State(),
		Sampler:    a.sampler.State(),
	}
}

// LoadState restores a snapshot taken by SaveState. The CPU's IRQ lines
// are part of the CPU's own state and are not touched.
func (a *APU) LoadState(s State) error {
	switch {
	case s.FrameCycle < 0 || s.FrameCycle >= FRAME_FIVE_WRAP:
		return fmt.Errorf("invalid APU frame position %d", s.FrameCycle)
	case s.DMC.Bits == 0 || s.DMC.Bits > 8:
		return fmt.Errorf("invalid DMC bit count %d", s.DMC.Bits)
	}

	a.pulse1.load(s.Pulse1)
	a.pulse2.load(s.Pulse2)
	a.triangle.load(s.Triangle)
	a.noise.load(s.Noise)
	a.dmc.load(s.DMC)
	a.cycle, a.frameCycle = s.Cycle, s.FrameCycle
	a.fiveStep, a.inhibit, a.frameIRQ = s.FiveStep, s.Inhibit, s.FrameIRQ
	a.timer.SetState(s.Divider)
	a.sampler.SetState(s.Sampler)
	return nil
}
