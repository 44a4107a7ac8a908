// package mos6502 implements the 2A03 flavour of the MOS Technologies
// 6502 processor, one bus cycle at a time.
//
// Every instruction is a fetch cycle followed by the micro-ops of its
// timing class. The class describes the bus cycles of an addressing
// mode and the opcode supplies the operation performed on the value
// the class read (or is about to write). Interrupts are polled at the
// same points the hardware polls them and enter through opcode 0.
package mos6502

import (
	"errors"
	"fmt"

	"github.com/bdwalton/nescycle/counter"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
)

const (
	STACK_PAGE   = 0x0100
	NMI_VECTOR   = 0xFFFA
	RESET_VECTOR = 0xFFFC
	IRQ_VECTOR   = 0xFFFE

	// The IRQ line is a wired-or bitmask with one bit per device.
	MAX_IRQ_DEVICES = 32
)

// Status register bits.
// 7  bit  0
// ---- ----
// NV1B DIZC
// |||| ||||
// |||| |||+- Carry
// |||| ||+-- Zero
// |||| |+--- Interrupt Disable
// |||| +---- Decimal (no effect on the 2A03)
// |||+------ Break; only exists in copies pushed to the stack
// ||+------- Unused; always pushed as 1
// |+-------- Overflow
// +--------- Negative
const (
	STATUS_FLAG_CARRY = 1 << iota
	STATUS_FLAG_ZERO
	STATUS_FLAG_INTERRUPT_DISABLE
	STATUS_FLAG_DECIMAL
	STATUS_FLAG_BREAK
	STATUS_FLAG_UNUSED
	STATUS_FLAG_OVERFLOW
	STATUS_FLAG_NEGATIVE
)

var ErrTooManyIRQDevices = errors.New("too many IRQ devices")

// CPU implements all of the machine state for the 6502.
type CPU struct {
	acc    uint8  // main register
	x, y   uint8  // index registers
	status uint8  // a register for storing various status bits
	sp     uint8  // stack pointer - stack is 0x0100-0x01FF so only 8 bits needed
	pc     uint16 // the program counter

	// Per instruction scratch, shared between the timing class
	// and the opcode operation.
	opcode  uint8
	value   uint8
	address uint16
	ptr     uint8
	ptrHigh uint8

	// Position within the active timing class. stepInc is what the
	// cursor advances by once the current micro-op returns.
	class   uint8
	cursor  int
	stepInc int

	irqLines     uint32
	irqDevices   int
	nmiEdge      bool
	nmiPending   bool
	irqPending   bool
	hwInterrupt  bool // the active interrupt sequence was not a BRK
	interruptNMI bool // the active interrupt sequence vectors through NMI

	cycles  uint64
	fetches uint64
	jammed  bool

	mem   *memory.Memory
	timer *counter.Counter
	log   logger.Logger
}

// New returns a CPU on mem. The CPU advances one cycle per Tick until
// SetDivider says otherwise.
func New(mem *memory.Memory, log logger.Logger) *CPU {
	c := &CPU{
		mem:    mem,
		log:    logger.Or(log),
		status: STATUS_FLAG_UNUSED | STATUS_FLAG_INTERRUPT_DISABLE,
	}
	c.timer = counter.New(0, c.step)
	c.prime()
	return c
}

// SetDivider makes the CPU run one cycle every reload+1 ticks.
func (c *CPU) SetDivider(reload int) {
	c.timer.SetReload(reload)
	c.timer.Restart()
}

// Reset emulates the reset line: the registers survive, the stack
// pointer moves down 3 as though the interrupt sequence ran with its
// writes suppressed and execution resumes at the reset vector.
func (c *CPU) Reset() {
	c.sp -= 3
	c.status |= STATUS_FLAG_INTERRUPT_DISABLE
	c.pc = c.mem.Read16(RESET_VECTOR)
	c.nmiEdge, c.nmiPending, c.irqPending = false, false, false
	c.hwInterrupt, c.interruptNMI = false, false
	c.jammed = false
	c.prime()
}

// prime leaves the cursor past the end of a class, so the next step is
// an opcode fetch.
func (c *CPU) prime() {
	c.class = CLASS_IMPLIED
	c.cursor = len(timings[CLASS_IMPLIED])
	c.stepInc = 1
}

// Tick advances the CPU n master clock ticks.
func (c *CPU) Tick(n int) {
	c.timer.Tick(n)
}

// Stall holds the CPU off the bus for the given number of CPU cycles,
// as OAM and DMC DMA do.
func (c *CPU) Stall(cycles int) {
	c.timer.Delay(cycles * (c.timer.Reload() + 1))
}

// Cycles returns the number of CPU cycles executed since power on.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// ConnectIRQ allocates a line on the shared IRQ bitmask.
func (c *CPU) ConnectIRQ() (uint8, error) {
	if c.irqDevices >= MAX_IRQ_DEVICES {
		return 0, fmt.Errorf("connecting device %d: %w", c.irqDevices+1, ErrTooManyIRQDevices)
	}
	bit := uint8(c.irqDevices)
	c.irqDevices++
	return bit, nil
}

// PullIRQ asserts the device's IRQ line. It stays asserted until
// released.
func (c *CPU) PullIRQ(bit uint8) {
	c.irqLines |= 1 << bit
}

// ReleaseIRQ deasserts the device's IRQ line.
func (c *CPU) ReleaseIRQ(bit uint8) {
	c.irqLines &^= 1 << bit
}

// EdgeNMI latches a falling edge on the NMI line. It is recognised at
// the next poll.
func (c *CPU) EdgeNMI() {
	c.nmiEdge = true
}

// step performs one CPU cycle.
func (c *CPU) step() {
	c.cycles++
	seq := timings[c.class]
	if c.cursor >= len(seq) {
		c.fetchOpcode()
	} else {
		c.stepInc = 1
		seq[c.cursor](c)
		c.cursor += c.stepInc
	}

	if c.atPollPoint() {
		c.pollInterrupts()
	}
}

// atPollPoint reports whether the cycle just run is the one after
// which the hardware samples the interrupt lines. That is normally the
// penultimate cycle of the instruction. Branches sample after the
// opcode fetch and their page fixup polls on its own.
func (c *CPU) atPollPoint() bool {
	if c.class == CLASS_RELATIVE {
		return c.cursor == 0
	}
	return c.cursor == len(timings[c.class])-1
}

func (c *CPU) pollInterrupts() {
	if c.nmiEdge {
		c.nmiPending = true
		c.nmiEdge = false
	}
	c.irqPending = c.irqLines != 0 && c.status&STATUS_FLAG_INTERRUPT_DISABLE == 0
}

// fetchOpcode reads the next opcode, or substitutes the interrupt
// sequence without touching PC, and moves the cursor to the start of
// the opcode's timing class. Micro-ops that overlap the fetch of the
// next instruction call it directly.
func (c *CPU) fetchOpcode() {
	c.fetches++
	if c.nmiPending || c.irqPending {
		c.opcode = 0x00
		c.hwInterrupt = true
		c.interruptNMI = c.nmiPending
		c.nmiPending, c.irqPending = false, false
	} else {
		c.opcode = c.read(c.pc)
		c.pc++
		c.hwInterrupt = false
		c.interruptNMI = false
	}

	c.class = opcodes[c.opcode].class
	c.cursor = 0
	c.stepInc = 0
}

// skip jumps the cursor over the next micro-op of the active class.
func (c *CPU) skip() {
	c.stepInc = 2
}

func (c *CPU) flag(f uint8) bool {
	return c.status&f != 0
}

func (c *CPU) setFlag(f uint8, on bool) {
	if on {
		c.status |= f
	} else {
		c.status &^= f
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(STATUS_FLAG_ZERO, v == 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, v&0x80 != 0)
}

func (c *CPU) carry() uint8 {
	return c.status & STATUS_FLAG_CARRY
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SetPC moves execution to pc at the next fetch.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
	c.prime()
}

// Registers returns A, X, Y, SP and P.
func (c *CPU) Registers() (a, x, y, sp, p uint8) {
	return c.acc, c.x, c.y, c.sp, c.status
}

// AtInstructionBoundary reports whether the next cycle fetches an
// opcode.
func (c *CPU) AtInstructionBoundary() bool {
	return c.cursor >= len(timings[c.class])
}

// StepInstruction runs the cycles of one instruction. A branch that
// overlaps the fetch of its successor stops after that fetch, and the
// next call finishes the successor.
func (c *CPU) StepInstruction() {
	limit := c.fetches + 1
	if !c.AtInstructionBoundary() {
		limit = c.fetches
	}
	for {
		c.step()
		if c.AtInstructionBoundary() || c.fetches > limit {
			return
		}
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("A=0x%02x X=0x%02x Y=0x%02x SP=0x%02x P=%08b PC=0x%04x cycles=%d", c.acc, c.x, c.y, c.sp, c.status, c.pc, c.cycles)
}
