// Package console wires the CPU, PPU, APU, cartridge and controllers
// into a machine driven by the master clock.
package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/bdwalton/nescycle/apu"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/mappers"
	"github.com/bdwalton/nescycle/memory"
	"github.com/bdwalton/nescycle/mos6502"
	"github.com/bdwalton/nescycle/nesrom"
	"github.com/bdwalton/nescycle/ppu"
)

var ErrNoCartridge = errors.New("no cartridge loaded")

// NTSC clock ratios. The dividers are counter reloads, so the CPU and
// APU step once every 12 master ticks and the PPU once every 4.
const (
	MASTER_CLOCK = 21477272 // Hz

	CPU_DIVIDER = 11
	APU_DIVIDER = 11
	PPU_DIVIDER = 3

	// Every unit fires on a multiple of this many master ticks, so
	// ticking in quanta aligned to it is the same as ticking one at
	// a time.
	TICK_QUANTUM = PPU_DIVIDER + 1

	// Master ticks per frame, rounded up.
	FRAME_TICKS = 89342 * TICK_QUANTUM
)

type Options struct {
	// Logger receives tagged log lines from every unit. nil
	// discards them.
	Logger logger.Logger
}

type Machine struct {
	log    logger.Logger
	cpuMem *memory.Memory
	ppuMem *memory.Memory

	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	apu    *apu.APU
	mapper mappers.Mapper
	rom    *nesrom.ROM
	pads   [2]controller

	ticks   uint64 // master ticks since reset
	vblanks uint64
}

// New returns a powered off machine with no cartridge.
func New(opts Options) (*Machine, error) {
	m := &Machine{
		log:    logger.Or(opts.Logger),
		cpuMem: memory.New(CPU_MEMORY_SIZE),
		ppuMem: memory.New(PPU_MEMORY_SIZE),
	}

	m.cpu = mos6502.New(m.cpuMem, m.log)
	m.ppu = ppu.New(m.ppuMem, m.cpu, m.log)
	a, err := apu.New(m.cpuMem, m.cpu, m.log)
	if err != nil {
		return nil, fmt.Errorf("creating APU: %w", err)
	}
	m.apu = a

	m.ppu.SetFrameFunc(func() { m.vblanks++ })

	return m, nil
}

// Load inserts rom and resets the machine. save backs the cartridge's
// battery RAM and may be nil.
func (m *Machine) Load(rom *nesrom.ROM, save io.ReadWriteSeeker) error {
	mp, err := mappers.Load(rom, m.cpuMem, m.ppuMem, save, m.log)
	if err != nil {
		return err
	}
	m.rom, m.mapper = rom, mp
	m.installBus()
	m.Reset()
	return nil
}

// Reset presses the reset button. Memory survives it. The dividers are
// restarted together so every unit fires on a quantum boundary.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.ppu.Reset()
	m.apu.Reset()
	m.cpu.SetDivider(CPU_DIVIDER)
	m.apu.SetDivider(APU_DIVIDER)
	m.ppu.SetDivider(PPU_DIVIDER)
	m.ticks = 0
}

// Tick advances the machine n master clock ticks. The CPU runs first,
// then the APU, the PPU and the mapper. With no cartridge loaded there
// is nothing to run.
func (m *Machine) Tick(n int) {
	if m.mapper == nil {
		return
	}
	for n > 0 {
		k := TICK_QUANTUM - int(m.ticks%TICK_QUANTUM)
		if k > n {
			k = n
		}
		m.cpu.Tick(k)
		m.apu.Tick(k)
		m.ppu.Tick(k)
		m.mapper.Tick(k)
		m.ticks += uint64(k)
		n -= k
	}
}

// StepFrame runs until the next vertical blank starts.
func (m *Machine) StepFrame() error {
	if m.mapper == nil {
		return ErrNoCartridge
	}
	start := m.vblanks
	for ticks := 0; m.vblanks == start; ticks += TICK_QUANTUM {
		if ticks > FRAME_TICKS {
			return fmt.Errorf("no vertical blank after %d ticks", ticks)
		}
		m.Tick(TICK_QUANTUM)
	}
	return nil
}

// StepInstruction runs until the CPU has finished the instruction in
// progress, or the next one when it is between instructions.
func (m *Machine) StepInstruction() error {
	if m.mapper == nil {
		return ErrNoCartridge
	}
	start := m.cpu.Cycles()
	for m.cpu.Cycles() == start || !m.cpu.AtInstructionBoundary() {
		m.Tick(TICK_QUANTUM)
	}
	return nil
}

// SetButtons sets the buttons held on controller port 0 or 1, one bit
// per button as laid out by the BUTTON_ constants.
func (m *Machine) SetButtons(port int, buttons uint8) {
	if port >= 0 && port < len(m.pads) {
		m.pads[port].buttons = buttons
	}
}

// SetVideoOutput installs the function called once per visible pixel.
func (m *Machine) SetVideoOutput(f func(x, y int, rgb uint32)) {
	m.ppu.SetOutput(f)
}

// SetAudioOutput installs the function called once per audio sample.
// Samples arrive at apu.SampleRate.
func (m *Machine) SetAudioOutput(f func(uint8)) {
	m.apu.SetOutput(f)
}

// Flush writes the cartridge's battery RAM out, if it has any.
func (m *Machine) Flush() error {
	if m.mapper == nil {
		return ErrNoCartridge
	}
	return m.mapper.Flush()
}

// Ticks returns the master ticks run since reset.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Frames returns the number of vertical blanks since power on.
func (m *Machine) Frames() uint64 {
	return m.vblanks
}

// CPU gives debuggers access to the processor.
func (m *Machine) CPU() *mos6502.CPU {
	return m.cpu
}

// Peek reads CPU memory through the bus, so reading a register has its
// usual side effects.
func (m *Machine) Peek(addr uint16) uint8 {
	return m.cpuMem.Read(addr)
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\n%s\n%s", m.cpu, m.ppu, m.apu)
}
