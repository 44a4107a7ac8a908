package mos6502

// Timing classes. Each is the list of bus cycles that follow the
// opcode fetch for one addressing mode and access type.
//
// https://www.nesdev.org/6502_cpu.txt
const (
	CLASS_INTERRUPT = iota // BRK, NMI and IRQ
	CLASS_RTI
	CLASS_RTS
	CLASS_PUSH
	CLASS_PULL
	CLASS_JSR
	CLASS_IMPLIED // includes accumulator operands
	CLASS_IMMEDIATE
	CLASS_ABS_JMP
	CLASS_ABS_READ
	CLASS_ABS_RMW
	CLASS_ABS_WRITE
	CLASS_ZP_READ
	CLASS_ZP_RMW
	CLASS_ZP_WRITE
	CLASS_ZPX_READ
	CLASS_ZPX_RMW
	CLASS_ZPX_WRITE
	CLASS_ZPY_READ
	CLASS_ZPY_WRITE
	CLASS_ABX_READ
	CLASS_ABX_RMW
	CLASS_ABX_WRITE
	CLASS_ABY_READ
	CLASS_ABY_RMW
	CLASS_ABY_WRITE
	CLASS_RELATIVE
	CLASS_IZX_READ
	CLASS_IZX_RMW
	CLASS_IZX_WRITE
	CLASS_IZY_READ
	CLASS_IZY_RMW
	CLASS_IZY_WRITE
	CLASS_IND_JMP
	NUM_CLASSES
)

// microOp is one bus cycle.
type microOp func(*CPU)

var timings [NUM_CLASSES][]microOp

func init() {
	timings = [NUM_CLASSES][]microOp{
		CLASS_INTERRUPT: {(*CPU).interruptPadding, (*CPU).pushPCH, (*CPU).pushPCL, (*CPU).pushStatus, (*CPU).vectorLow, (*CPU).vectorHigh},
		CLASS_RTI:       {(*CPU).dummyReadPC, (*CPU).incSP, (*CPU).pullStatus, (*CPU).pullPCL, (*CPU).pullPCH},
		CLASS_RTS:       {(*CPU).dummyReadPC, (*CPU).incSP, (*CPU).pullPCL, (*CPU).pullPCH, (*CPU).incPC},
		CLASS_PUSH:      {(*CPU).dummyReadPC, (*CPU).execute},
		CLASS_PULL:      {(*CPU).dummyReadPC, (*CPU).incSP, (*CPU).execute},
		CLASS_JSR:       {(*CPU).fetchAddrLow, (*CPU).jsrIdle, (*CPU).pushPCH, (*CPU).pushPCL, (*CPU).jumpAbsolute},
		CLASS_IMPLIED:   {(*CPU).impliedExecute},
		CLASS_IMMEDIATE: {(*CPU).immediateExecute},

		CLASS_ABS_JMP:   {(*CPU).fetchAddrLow, (*CPU).jumpAbsolute},
		CLASS_ABS_READ:  {(*CPU).fetchAddrLow, (*CPU).fetchAddrHigh, (*CPU).readExecute},
		CLASS_ABS_RMW:   {(*CPU).fetchAddrLow, (*CPU).fetchAddrHigh, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_ABS_WRITE: {(*CPU).fetchAddrLow, (*CPU).fetchAddrHigh, (*CPU).executeWrite},

		CLASS_ZP_READ:  {(*CPU).fetchZeroPage, (*CPU).readExecute},
		CLASS_ZP_RMW:   {(*CPU).fetchZeroPage, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_ZP_WRITE: {(*CPU).fetchZeroPage, (*CPU).executeWrite},

		CLASS_ZPX_READ:  {(*CPU).fetchZeroPage, (*CPU).indexZeroPageX, (*CPU).readExecute},
		CLASS_ZPX_RMW:   {(*CPU).fetchZeroPage, (*CPU).indexZeroPageX, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_ZPX_WRITE: {(*CPU).fetchZeroPage, (*CPU).indexZeroPageX, (*CPU).executeWrite},
		CLASS_ZPY_READ:  {(*CPU).fetchZeroPage, (*CPU).indexZeroPageY, (*CPU).readExecute},
		CLASS_ZPY_WRITE: {(*CPU).fetchZeroPage, (*CPU).indexZeroPageY, (*CPU).executeWrite},

		// Indexed reads skip the fixup cycle when the index doesn't
		// carry. Writes and read-modify-writes always spend it, on
		// the final address when there was nothing to fix.
		CLASS_ABX_READ:  {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighX, (*CPU).fixupRead, (*CPU).readExecute},
		CLASS_ABX_RMW:   {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighX, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_ABX_WRITE: {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighX, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).executeWrite},
		CLASS_ABY_READ:  {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighY, (*CPU).fixupRead, (*CPU).readExecute},
		CLASS_ABY_RMW:   {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighY, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_ABY_WRITE: {(*CPU).fetchAddrLow, (*CPU).fetchAddrHighY, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).executeWrite},

		CLASS_RELATIVE: {(*CPU).branchOperand, (*CPU).branchDecide, (*CPU).branchFixup, (*CPU).fetchOpcode},

		CLASS_IZX_READ:  {(*CPU).fetchPointer, (*CPU).indexPointerX, (*CPU).pointerLow, (*CPU).pointerHigh, (*CPU).readExecute},
		CLASS_IZX_RMW:   {(*CPU).fetchPointer, (*CPU).indexPointerX, (*CPU).pointerLow, (*CPU).pointerHigh, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_IZX_WRITE: {(*CPU).fetchPointer, (*CPU).indexPointerX, (*CPU).pointerLow, (*CPU).pointerHigh, (*CPU).executeWrite},
		CLASS_IZY_READ:  {(*CPU).fetchPointer, (*CPU).pointerLow, (*CPU).pointerHighY, (*CPU).fixupRead, (*CPU).readExecute},
		CLASS_IZY_RMW:   {(*CPU).fetchPointer, (*CPU).pointerLow, (*CPU).pointerHighY, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).readValue, (*CPU).writeBackExecute, (*CPU).writeValue},
		CLASS_IZY_WRITE: {(*CPU).fetchPointer, (*CPU).pointerLow, (*CPU).pointerHighY, (*CPU).fixupReadSkip, (*CPU).dummyRead, (*CPU).executeWrite},

		CLASS_IND_JMP: {(*CPU).fetchPointer, (*CPU).fetchPointerPage, (*CPU).indirectLow, (*CPU).indirectJump},
	}
}

// execute runs the operation of the current opcode.
func (c *CPU) execute() {
	opcodes[c.opcode].exec(c)
}

func (c *CPU) dummyReadPC() {
	c.read(c.pc)
}

func (c *CPU) incPC() {
	c.read(c.pc)
	c.pc++
}

// incSP is the internal cycle before a pull. The hardware reads the
// stack at the old pointer here; that read is not performed, which is
// a known approximation shared by RTI, RTS and the pull instructions.
func (c *CPU) incSP() {
	c.sp++
}

// jsrIdle is the internal cycle of JSR. As with incSP the stack read
// the hardware makes here is not modelled.
func (c *CPU) jsrIdle() {}

func (c *CPU) impliedExecute() {
	c.read(c.pc)
	c.execute()
}

func (c *CPU) immediateExecute() {
	c.value = c.read(c.pc)
	c.pc++
	c.execute()
}

func (c *CPU) fetchAddrLow() {
	c.address = uint16(c.read(c.pc))
	c.pc++
}

func (c *CPU) fetchAddrHigh() {
	c.address |= uint16(c.read(c.pc)) << 8
	c.pc++
}

func (c *CPU) fetchAddrHighIndexed(idx uint8) {
	c.fetchAddrHigh()
	base := c.address
	c.address += uint16(idx)
	if base&0xFF00 == c.address&0xFF00 {
		c.skip()
	}
}

func (c *CPU) fetchAddrHighX() {
	c.fetchAddrHighIndexed(c.x)
}

func (c *CPU) fetchAddrHighY() {
	c.fetchAddrHighIndexed(c.y)
}

// fixupRead is the extra cycle of a page crossing: the bus sees the
// address before the carry reached the high byte.
func (c *CPU) fixupRead() {
	c.read(c.address - 0x0100)
}

// fixupReadSkip is fixupRead for classes that would otherwise spend
// the same cycle on dummyRead.
func (c *CPU) fixupReadSkip() {
	c.fixupRead()
	c.skip()
}

func (c *CPU) dummyRead() {
	c.read(c.address)
}

func (c *CPU) readValue() {
	c.value = c.read(c.address)
}

func (c *CPU) readExecute() {
	c.value = c.read(c.address)
	c.execute()
}

// writeBackExecute is the read-modify-write double write: the
// unmodified value goes back out while the operation runs.
func (c *CPU) writeBackExecute() {
	c.write(c.address, c.value)
	c.execute()
}

func (c *CPU) writeValue() {
	c.write(c.address, c.value)
}

func (c *CPU) executeWrite() {
	c.execute()
	c.write(c.address, c.value)
}

func (c *CPU) fetchZeroPage() {
	c.address = uint16(c.read(c.pc))
	c.pc++
}

func (c *CPU) indexZeroPageX() {
	c.read(c.address)
	c.address = uint16(uint8(c.address) + c.x)
}

func (c *CPU) indexZeroPageY() {
	c.read(c.address)
	c.address = uint16(uint8(c.address) + c.y)
}

func (c *CPU) fetchPointer() {
	c.ptr = c.read(c.pc)
	c.pc++
}

func (c *CPU) fetchPointerPage() {
	c.ptrHigh = c.read(c.pc)
	c.pc++
}

func (c *CPU) indexPointerX() {
	c.read(uint16(c.ptr))
	c.ptr += c.x
}

// pointerLow and pointerHigh read a zero page pointer, wrapping
// within the zero page.
func (c *CPU) pointerLow() {
	c.address = uint16(c.read(uint16(c.ptr)))
	c.ptr++
}

func (c *CPU) pointerHigh() {
	c.address |= uint16(c.read(uint16(c.ptr))) << 8
}

func (c *CPU) pointerHighY() {
	c.pointerHigh()
	base := c.address
	c.address += uint16(c.y)
	if base&0xFF00 == c.address&0xFF00 {
		c.skip()
	}
}

// indirectLow and indirectJump keep the original 6502 bug: the
// pointer's high byte is read from the start of the same page when
// the pointer sits at $xxFF.
func (c *CPU) indirectLow() {
	c.address = uint16(c.read(uint16(c.ptrHigh)<<8 | uint16(c.ptr)))
	c.ptr++
}

func (c *CPU) indirectJump() {
	c.pc = uint16(c.read(uint16(c.ptrHigh)<<8|uint16(c.ptr)))<<8 | c.address
}

func (c *CPU) jumpAbsolute() {
	c.pc = uint16(c.read(c.pc))<<8 | c.address
}

func (c *CPU) pushPCH() {
	c.push(uint8(c.pc >> 8))
}

func (c *CPU) pushPCL() {
	c.push(uint8(c.pc))
}

func (c *CPU) pullPCL() {
	c.pc = uint16(c.peek())
	c.sp++
}

func (c *CPU) pullPCH() {
	c.pc |= uint16(c.peek()) << 8
}

func (c *CPU) pullStatus() {
	c.status = c.peek()&^STATUS_FLAG_BREAK | STATUS_FLAG_UNUSED
	c.sp++
}

// interruptPadding reads the byte after the opcode. BRK skips it;
// hardware interrupts leave PC where it was.
func (c *CPU) interruptPadding() {
	c.read(c.pc)
	if !c.hwInterrupt {
		c.pc++
	}
}

// pushStatus pushes P with B set only for BRK, then picks the vector.
// An NMI edge seen by now takes over the vector of an IRQ or BRK.
func (c *CPU) pushStatus() {
	p := c.status | STATUS_FLAG_UNUSED
	if c.hwInterrupt {
		p &^= STATUS_FLAG_BREAK
	} else {
		p |= STATUS_FLAG_BREAK
	}
	c.push(p)

	if !c.interruptNMI && c.nmiEdge {
		c.interruptNMI = true
		c.nmiEdge = false
	}
	c.address = IRQ_VECTOR
	if c.interruptNMI {
		c.address = NMI_VECTOR
	}
}

func (c *CPU) vectorLow() {
	c.pc = uint16(c.read(c.address))
	c.status |= STATUS_FLAG_INTERRUPT_DISABLE
}

func (c *CPU) vectorHigh() {
	c.pc |= uint16(c.read(c.address+1)) << 8
}

// branchOperand reads the signed offset. The opcode operation decides
// later whether it is used.
func (c *CPU) branchOperand() {
	c.address = uint16(int8(c.read(c.pc)))
	c.pc++
}

// branchDecide is the cycle after the operand. A branch not taken
// spends it fetching the next opcode. A taken branch adds the offset
// and, when that stays within the page, fetches the next opcode on
// the following cycle. Crossing a page costs one more cycle and
// samples the interrupt lines again before it.
func (c *CPU) branchDecide() {
	c.execute()
	if c.value == 0 {
		c.fetchOpcode()
		return
	}

	c.read(c.pc)
	old := c.pc
	c.pc += c.address
	if old&0xFF00 == c.pc&0xFF00 {
		c.skip()
		return
	}
	c.pollInterrupts()
}

func (c *CPU) branchFixup() {
	old := c.pc - c.address
	c.read(old&0xFF00 | c.pc&0x00FF)
}
