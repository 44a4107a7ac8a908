package console

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/bdwalton/nescycle/apu"
	"github.com/bdwalton/nescycle/mappers"
	"github.com/bdwalton/nescycle/mos6502"
	"github.com/bdwalton/nescycle/ppu"
)

// machineState is everything a running machine needs to carry on
// exactly where it was. Handlers and output functions are not state;
// they come from loading the same cartridge first.
type machineState struct {
	Mapper uint8 // checked against the loaded cartridge

	CPU       mos6502.State
	PPU       ppu.State
	APU       apu.State
	Cartridge mappers.State

	CPUMemory, PPUMemory []uint8
	CPUBus, PPUBus       uint8

	Pads    [2]controllerState
	Ticks   uint64
	VBlanks uint64
}

func (m *Machine) snapshot() *machineState {
	s := &machineState{
		Mapper:    m.mapper.ID(),
		CPU:       m.cpu.SaveState(),
		PPU:       m.ppu.SaveState(),
		APU:       m.apu.SaveState(),
		Cartridge: m.mapper.SaveState(),
		CPUMemory: append([]uint8(nil), m.cpuMem.Data...),
		PPUMemory: append([]uint8(nil), m.ppuMem.Data...),
		CPUBus:    m.cpuMem.Bus,
		PPUBus:    m.ppuMem.Bus,
		Ticks:     m.ticks,
		VBlanks:   m.vblanks,
	}
	for i := range m.pads {
		s.Pads[i] = m.pads[i].save()
	}
	return s
}

func (m *Machine) restore(s *machineState) error {
	switch {
	case s.Mapper != m.mapper.ID():
		return fmt.Errorf("state is for mapper %d, cartridge uses %d", s.Mapper, m.mapper.ID())
	case len(s.CPUMemory) != m.cpuMem.Len(), len(s.PPUMemory) != m.ppuMem.Len():
		return fmt.Errorf("state memory sizes %d/%d, want %d/%d", len(s.CPUMemory), len(s.PPUMemory), m.cpuMem.Len(), m.ppuMem.Len())
	}

	if err := m.cpu.LoadState(s.CPU); err != nil {
		return err
	}
	if err := m.ppu.LoadState(s.PPU); err != nil {
		return err
	}
	if err := m.apu.LoadState(s.APU); err != nil {
		return err
	}
	if err := m.mapper.LoadState(s.Cartridge); err != nil {
		return err
	}

	copy(m.cpuMem.Data, s.CPUMemory)
	copy(m.ppuMem.Data, s.PPUMemory)
	m.cpuMem.Bus, m.ppuMem.Bus = s.CPUBus, s.PPUBus
	for i := range m.pads {
		m.pads[i].load(s.Pads[i])
	}
	m.ticks, m.vblanks = s.Ticks, s.VBlanks
	return nil
}

// SaveState writes the machine's state to w.
func (m *Machine) SaveState(w io.Writer) error {
	if m.mapper == nil {
		return ErrNoCartridge
	}
	if err := gob.NewEncoder(w).Encode(m.snapshot()); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	m.log.Logf("console", "saved state at frame %d", m.vblanks)
	return nil
}

// LoadState replaces the machine's state with one written by
// SaveState. The cartridge it was saved with must already be loaded. A
// state that fails to load leaves the machine as it was.
func (m *Machine) LoadState(r io.Reader) error {
	if m.mapper == nil {
		return ErrNoCartridge
	}

	var s machineState
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}

	prev := m.snapshot()
	if err := m.restore(&s); err != nil {
		if rerr := m.restore(prev); rerr != nil {
			panic(fmt.Sprintf("restoring state after failed load: %v", rerr))
		}
		return fmt.Errorf("loading state: %w", err)
	}
	m.log.Logf("console", "loaded state at frame %d", m.vblanks)
	return nil
}
