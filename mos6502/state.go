package mos6502

import (
	"fmt"

	"github.com/bdwalton/nescycle/counter"
)

// State is a snapshot of the CPU, including the position inside the
// instruction being executed.
type State struct {
	A, X, Y, SP, P uint8
	PC             uint16

	Opcode, Value, Ptr, PtrHigh uint8
	Address                     uint16

	Class   uint8
	Cursor  int
	StepInc int

	IRQLines                          uint32
	IRQDevices                        int
	NMIEdge, NMIPending, IRQPending   bool
	HWInterrupt, InterruptNMI, Jammed bool
	Cycles, Fetches                   uint64
	Divider                           counter.State
}

func (c *CPU) SaveState() State {
	return State{
		A: c.acc, X: c.x, Y: c.y, SP: c.sp, P: c.status, PC: c.pc,
		Opcode: c.opcode, Value: c.value, Ptr: c.ptr, PtrHigh: c.ptrHigh, Address: c.address,
		Class: c.class, Cursor: c.cursor, StepInc: c.stepInc,
		IRQLines: c.irqLines, IRQDevices: c.irqDevices,
		NMIEdge: c.nmiEdge, NMIPending: c.nmiPending, IRQPending: c.irqPending,
		HWInterrupt: c.hwInterrupt, InterruptNMI: c.interruptNMI, Jammed: c.jammed,
		Cycles: c.cycles, Fetches: c.fetches,
		Divider: c.timer.State(),
	}
}

func (c *CPU) LoadState(s State) error {
	if int(s.Class) >= NUM_CLASSES || s.Cursor < 0 || s.Cursor > len(timings[s.Class]) {
		return fmt.Errorf("invalid CPU cursor (class %d, step %d)", s.Class, s.Cursor)
	}

	c.acc, c.x, c.y, c.sp, c.status, c.pc = s.A, s.X, s.Y, s.SP, s.P, s.PC
	c.opcode, c.value, c.ptr, c.ptrHigh, c.address = s.Opcode, s.Value, s.Ptr, s.PtrHigh, s.Address
	c.class, c.cursor, c.stepInc = s.Class, s.Cursor, s.StepInc
	c.irqLines, c.irqDevices = s.IRQLines, s.IRQDevices
	c.nmiEdge, c.nmiPending, c.irqPending = s.NMIEdge, s.NMIPending, s.IRQPending
	c.hwInterrupt, c.interruptNMI, c.jammed = s.HWInterrupt, s.InterruptNMI, s.Jammed
	c.cycles, c.fetches = s.Cycles, s.Fetches
	c.timer.SetState(s.Divider)
	return nil
}
