// Package apu implements the 2A03 audio processing unit: two pulse
// channels, a triangle, a noise channel and the delta modulation
// channel, the frame sequencer that clocks their envelopes, sweeps and
// length counters, and the non-linear mixer.
//
// The APU steps once per CPU cycle. Every SAMPLE_DIVISOR steps the
// mixed level is handed to the output function as an 8-bit sample.
package apu

import (
	"fmt"

	"github.com/bdwalton/nescycle/counter"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
)

// Registers, as exposed in CPU memory.
const (
	PULSE1_CTRL   = 0x4000
	PULSE2_CTRL   = 0x4004
	TRIANGLE_CTRL = 0x4008
	NOISE_CTRL    = 0x400C
	DMC_CTRL      = 0x4010
	DMC_LAST      = 0x4013
	STATUS        = 0x4015
	FRAME_COUNTER = 0x4017
)

// Status register bits.
const (
	STATUS_PULSE1    = 1 << 0
	STATUS_PULSE2    = 1 << 1
	STATUS_TRIANGLE  = 1 << 2
	STATUS_NOISE     = 1 << 3
	STATUS_DMC       = 1 << 4
	STATUS_FRAME_IRQ = 1 << 6
	STATUS_DMC_IRQ   = 1 << 7
)

// Frame counter register bits.
const (
	FRAME_IRQ_INHIBIT = 1 << 6
	FRAME_FIVE_STEP   = 1 << 7
)

// Frame sequencer events, in CPU cycles since the sequence began.
const (
	FRAME_STEP1      = 7457
	FRAME_STEP2      = 14913
	FRAME_STEP3      = 22371
	FRAME_IRQ_START  = 29828
	FRAME_FOUR_STEP  = 29829
	FRAME_FOUR_WRAP  = 29830
	FRAME_FIVE_STEPS = 37281
	FRAME_FIVE_WRAP  = 37282
)

const (
	CPU_FREQUENCY  = 1789773 // NTSC, Hz
	SAMPLE_DIVISOR = 30

	// SampleRate is the rate at which the output function is called
	// when the APU runs at full speed.
	SampleRate = CPU_FREQUENCY / SAMPLE_DIVISOR
)

// CPU is what the APU needs from the processor: two IRQ lines, and a
// way to hold it off the bus while the DMC fetches.
type CPU interface {
	ConnectIRQ() (uint8, error)
	PullIRQ(bit uint8)
	ReleaseIRQ(bit uint8)
	Stall(cycles int)
}

type APU struct {
	mem     *memory.Memory // DMC samples are read from here
	cpu     CPU
	log     logger.Logger
	timer   *counter.Counter
	sampler *counter.Counter
	output  func(uint8)

	frameBit, dmcBit uint8

	pulse1, pulse2 *pulse
	triangle       *triangle
	noise          *noise
	dmc            *dmc

	cycle      uint64 // CPU cycles since reset
	frameCycle int
	fiveStep   bool
	inhibit    bool
	frameIRQ   bool
}

// New returns an APU reading DMC samples from mem, the CPU address
// space. It claims two of the CPU's IRQ lines.
func New(mem *memory.Memory, cpu CPU, log logger.Logger) (*APU, error) {
	a := &APU{mem: mem, cpu: cpu, log: logger.Or(log)}

	var err error
	if a.frameBit, err = cpu.ConnectIRQ(); err != nil {
		return nil, fmt.Errorf("apu frame IRQ: %w", err)
	}
	if a.dmcBit, err = cpu.ConnectIRQ(); err != nil {
		return nil, fmt.Errorf("apu DMC IRQ: %w", err)
	}

	a.timer = counter.New(0, a.step)
	a.sampler = counter.New(SAMPLE_DIVISOR-1, a.sample)
	a.Reset()
	return a, nil
}

// Install maps the channel, status and frame counter registers into CPU
// memory. 0x4014 and 0x4016 belong to OAM DMA and the controllers, and
// 0x4017 reads to the second controller.
func (a *APU) Install(cpuMem *memory.Memory) {
	cpuMem.Map(DMC_LAST, memory.OpenBusRead, a.writeRegister)
	cpuMem.Map(STATUS, a.readStatus, a.writeRegister)
	cpuMem.MapWrite(FRAME_COUNTER, a.writeRegister)
}

// SetDivider makes the APU step once every reload+1 ticks.
func (a *APU) SetDivider(reload int) {
	a.timer.SetReload(reload)
	a.timer.Restart()
}

// Reset silences every channel and restarts the frame sequencer in
// 4-step mode.
func (a *APU) Reset() {
	a.cpu.ReleaseIRQ(a.frameBit)
	a.cpu.ReleaseIRQ(a.dmcBit)

	a.pulse1 = newPulse(true)
	a.pulse2 = newPulse(false)
	a.triangle = newTriangle()
	a.noise = newNoise()
	a.dmc = newDMC(a.mem, a.cpu, a.dmcBit, a.log)

	a.cycle = 0
	a.frameCycle = 0
	a.fiveStep, a.inhibit, a.frameIRQ = false, false, false
	a.sampler.Restart()
}

// Tick advances the APU n master clock ticks.
func (a *APU) Tick(n int) {
	a.timer.Tick(n)
}

// SetOutput installs the function that receives each sample.
func (a *APU) SetOutput(f func(uint8)) {
	a.output = f
}

func (a *APU) String() string {
	return fmt.Sprintf("cycle=%d frame=%d five=%t irq=%t p1=%d p2=%d tri=%d noise=%d dmc=%d", a.cycle, a.frameCycle, a.fiveStep, a.frameIRQ,
		a.pulse1.length.Value, a.pulse2.length.Value, a.triangle.length.Value, a.noise.length.Value, a.dmc.remaining)
}

// step is one CPU cycle.
func (a *APU) step() {
	a.clockFrame()

	if a.cycle&0x01 == 0 {
		a.pulse1.timer.Tick(1)
		a.pulse2.timer.Tick(1)
	}
	a.triangle.timer.Tick(1)
	a.noise.timer.Tick(1)
	a.dmc.step()

	a.cycle++
	a.sampler.Tick(1)
}

// clockFrame runs the frame sequencer.
//
// https://www.nesdev.org/wiki/APU_Frame_Counter
func (a *APU) clockFrame() {
	a.frameCycle++
	switch a.frameCycle {
	case FRAME_STEP1, FRAME_STEP3:
		a.quarterFrame()
	case FRAME_STEP2:
		a.quarterFrame()
		a.halfFrame()
	case FRAME_IRQ_START:
		if !a.fiveStep {
			a.raiseFrameIRQ()
		}
	case FRAME_FOUR_STEP:
		if a.fiveStep {
			return
		}
		a.quarterFrame()
		a.halfFrame()
		a.raiseFrameIRQ()
	case FRAME_FOUR_WRAP:
		// The last cycle of the 4-step sequence is also the first
		// of the next.
		if !a.fiveStep {
			a.raiseFrameIRQ()
			a.frameCycle = 0
		}
	case FRAME_FIVE_STEPS:
		a.quarterFrame()
		a.halfFrame()
	case FRAME_FIVE_WRAP:
		a.frameCycle = 0
	}
}

func (a *APU) quarterFrame() {
	a.pulse1.env.clock()
	a.pulse2.env.clock()
	a.triangle.clockLinear()
	a.noise.env.clock()
}

func (a *APU) halfFrame() {
	a.pulse1.length.clock()
	a.pulse2.length.clock()
	a.triangle.length.clock()
	a.noise.length.clock()
	a.pulse1.clockSweep()
	a.pulse2.clockSweep()
}

func (a *APU) raiseFrameIRQ() {
	if a.inhibit {
		return
	}
	a.frameIRQ = true
	a.cpu.PullIRQ(a.frameBit)
}

func (a *APU) clearFrameIRQ() {
	if a.frameIRQ {
		a.frameIRQ = false
		a.cpu.ReleaseIRQ(a.frameBit)
	}
}

// sample mixes the channels through the DAC tables.
func (a *APU) sample() {
	if a.output == nil {
		return
	}
	a.output(a.Level())
}

// Level returns the current mixed output scaled to 0-255.
func (a *APU) Level() uint8 {
	p := a.pulse1.output() + a.pulse2.output()
	tnd := 3*int(a.triangle.output()) + 2*int(a.noise.output()) + int(a.dmc.output())
	v := (pulseTable[p] + tndTable[tnd]) * 255
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func (a *APU) readStatus(m *memory.Memory, addr uint16) uint8 {
	v := m.Bus & 0x20
	if a.pulse1.length.Value > 0 {
		v |= STATUS_PULSE1
	}
	if a.pulse2.length.Value > 0 {
		v |= STATUS_PULSE2
	}
	if a.triangle.length.Value > 0 {
		v |= STATUS_TRIANGLE
	}
	if a.noise.length.Value > 0 {
		v |= STATUS_NOISE
	}
	if a.dmc.remaining > 0 {
		v |= STATUS_DMC
	}
	if a.frameIRQ {
		v |= STATUS_FRAME_IRQ
	}
	if a.dmc.irq {
		v |= STATUS_DMC_IRQ
	}
	a.clearFrameIRQ()
	return v
}

func (a *APU) writeRegister(m *memory.Memory, addr uint16, val uint8) {
	switch {
	case addr < PULSE2_CTRL:
		a.pulse1.write(addr, val)
	case addr < TRIANGLE_CTRL:
		a.pulse2.write(addr, val)
	case addr < NOISE_CTRL:
		a.triangle.write(addr, val)
	case addr < DMC_CTRL:
		a.noise.write(addr, val)
	case addr <= DMC_LAST:
		a.dmc.write(addr, val)
	case addr == STATUS:
		a.writeStatus(val)
	case addr == FRAME_COUNTER:
		a.writeFrameCounter(val)
	}
}

func (a *APU) writeStatus(val uint8) {
	a.pulse1.length.setEnabled(val&STATUS_PULSE1 != 0)
	a.pulse2.length.setEnabled(val&STATUS_PULSE2 != 0)
	a.triangle.length.setEnabled(val&STATUS_TRIANGLE != 0)
	a.noise.length.setEnabled(val&STATUS_NOISE != 0)
	a.dmc.setEnabled(val&STATUS_DMC != 0)
}

// writeFrameCounter restarts the sequence. The 5-step mode clocks
// every unit straight away. Real hardware waits 3 or 4 cycles before
// doing either.
func (a *APU) writeFrameCounter(val uint8) {
	a.fiveStep = val&FRAME_FIVE_STEP != 0
	a.inhibit = val&FRAME_IRQ_INHIBIT != 0
	if a.inhibit {
		a.clearFrameIRQ()
	}
	a.frameCycle = 0
	if a.fiveStep {
		a.quarterFrame()
		a.halfFrame()
	}
}
