package mos6502

// The opcode operations. Each works on the scratch value its timing
// class read, or sets the value its timing class is about to write.
// Branches leave 1 in value when taken.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// opFlow covers BRK, JSR, RTS, RTI and JMP, whose timing classes do
// all of the work.
func (c *CPU) opFlow() {}

func (c *CPU) opNOP() {}

// opJAM would halt a real 2A03. It is executed as a NOP.
func (c *CPU) opJAM() {
	if !c.jammed {
		c.log.Logf("cpu", "JAM opcode 0x%02x at 0x%04x treated as NOP", c.opcode, c.pc-1)
		c.jammed = true
	}
}

func (c *CPU) adc(v uint8) {
	sum := uint16(c.acc) + uint16(v) + uint16(c.carry())
	r := uint8(sum)
	c.setFlag(STATUS_FLAG_CARRY, sum > 0xFF)
	c.setFlag(STATUS_FLAG_OVERFLOW, (c.acc^r)&(v^r)&0x80 != 0)
	c.acc = r
	c.setZN(r)
}

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(STATUS_FLAG_CARRY, reg >= v)
	c.setZN(reg - v)
}

func (c *CPU) asl(v uint8) uint8 {
	c.setFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.setFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	r := v<<1 | c.carry()
	c.setFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
	c.setZN(r)
	return r
}

func (c *CPU) ror(v uint8) uint8 {
	r := v>>1 | c.carry()<<7
	c.setFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
	c.setZN(r)
	return r
}

func (c *CPU) opADC() { c.adc(c.value) }

func (c *CPU) opSBC() { c.adc(^c.value) }

func (c *CPU) opAND() {
	c.acc &= c.value
	c.setZN(c.acc)
}

func (c *CPU) opORA() {
	c.acc |= c.value
	c.setZN(c.acc)
}

func (c *CPU) opEOR() {
	c.acc ^= c.value
	c.setZN(c.acc)
}

func (c *CPU) opCMP() { c.compare(c.acc, c.value) }
func (c *CPU) opCPX() { c.compare(c.x, c.value) }
func (c *CPU) opCPY() { c.compare(c.y, c.value) }

func (c *CPU) opBIT() {
	c.setFlag(STATUS_FLAG_ZERO, c.acc&c.value == 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, c.value&0x40 != 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, c.value&0x80 != 0)
}

func (c *CPU) opLDA() {
	c.acc = c.value
	c.setZN(c.acc)
}

func (c *CPU) opLDX() {
	c.x = c.value
	c.setZN(c.x)
}

func (c *CPU) opLDY() {
	c.y = c.value
	c.setZN(c.y)
}

func (c *CPU) opSTA() { c.value = c.acc }
func (c *CPU) opSTX() { c.value = c.x }
func (c *CPU) opSTY() { c.value = c.y }

func (c *CPU) opASL() { c.value = c.asl(c.value) }
func (c *CPU) opLSR() { c.value = c.lsr(c.value) }
func (c *CPU) opROL() { c.value = c.rol(c.value) }
func (c *CPU) opROR() { c.value = c.ror(c.value) }

func (c *CPU) opASLAcc() { c.acc = c.asl(c.acc) }
func (c *CPU) opLSRAcc() { c.acc = c.lsr(c.acc) }
func (c *CPU) opROLAcc() { c.acc = c.rol(c.acc) }
func (c *CPU) opRORAcc() { c.acc = c.ror(c.acc) }

func (c *CPU) opINC() {
	c.value++
	c.setZN(c.value)
}

func (c *CPU) opDEC() {
	c.value--
	c.setZN(c.value)
}

func (c *CPU) opINX() {
	c.x++
	c.setZN(c.x)
}

func (c *CPU) opINY() {
	c.y++
	c.setZN(c.y)
}

func (c *CPU) opDEX() {
	c.x--
	c.setZN(c.x)
}

func (c *CPU) opDEY() {
	c.y--
	c.setZN(c.y)
}

func (c *CPU) opTAX() {
	c.x = c.acc
	c.setZN(c.x)
}

func (c *CPU) opTAY() {
	c.y = c.acc
	c.setZN(c.y)
}

func (c *CPU) opTXA() {
	c.acc = c.x
	c.setZN(c.acc)
}

func (c *CPU) opTYA() {
	c.acc = c.y
	c.setZN(c.acc)
}

func (c *CPU) opTSX() {
	c.x = c.sp
	c.setZN(c.x)
}

// TXS is the one transfer that leaves the flags alone.
func (c *CPU) opTXS() { c.sp = c.x }

func (c *CPU) opCLC() { c.status &^= STATUS_FLAG_CARRY }
func (c *CPU) opSEC() { c.status |= STATUS_FLAG_CARRY }
func (c *CPU) opCLI() { c.status &^= STATUS_FLAG_INTERRUPT_DISABLE }
func (c *CPU) opSEI() { c.status |= STATUS_FLAG_INTERRUPT_DISABLE }
func (c *CPU) opCLV() { c.status &^= STATUS_FLAG_OVERFLOW }
func (c *CPU) opCLD() { c.status &^= STATUS_FLAG_DECIMAL }
func (c *CPU) opSED() { c.status |= STATUS_FLAG_DECIMAL }

func (c *CPU) opPHA() { c.push(c.acc) }

// PHP always pushes B and the unused bit set.
func (c *CPU) opPHP() { c.push(c.status | STATUS_FLAG_BREAK | STATUS_FLAG_UNUSED) }

func (c *CPU) opPLA() {
	c.acc = c.peek()
	c.setZN(c.acc)
}

func (c *CPU) opPLP() {
	c.status = c.peek()&^STATUS_FLAG_BREAK | STATUS_FLAG_UNUSED
}

func (c *CPU) branchIf(cond bool) {
	c.value = 0
	if cond {
		c.value = 1
	}
}

func (c *CPU) opBPL() { c.branchIf(!c.flag(STATUS_FLAG_NEGATIVE)) }
func (c *CPU) opBMI() { c.branchIf(c.flag(STATUS_FLAG_NEGATIVE)) }
func (c *CPU) opBVC() { c.branchIf(!c.flag(STATUS_FLAG_OVERFLOW)) }
func (c *CPU) opBVS() { c.branchIf(c.flag(STATUS_FLAG_OVERFLOW)) }
func (c *CPU) opBCC() { c.branchIf(!c.flag(STATUS_FLAG_CARRY)) }
func (c *CPU) opBCS() { c.branchIf(c.flag(STATUS_FLAG_CARRY)) }
func (c *CPU) opBNE() { c.branchIf(!c.flag(STATUS_FLAG_ZERO)) }
func (c *CPU) opBEQ() { c.branchIf(c.flag(STATUS_FLAG_ZERO)) }

// Undocumented opcodes.
// https://www.nesdev.org/undocumented_opcodes.txt

func (c *CPU) opLAX() {
	c.acc = c.value
	c.x = c.value
	c.setZN(c.value)
}

func (c *CPU) opSAX() { c.value = c.acc & c.x }

func (c *CPU) opSLO() {
	c.value = c.asl(c.value)
	c.opORA()
}

func (c *CPU) opRLA() {
	c.value = c.rol(c.value)
	c.opAND()
}

func (c *CPU) opSRE() {
	c.value = c.lsr(c.value)
	c.opEOR()
}

func (c *CPU) opRRA() {
	c.value = c.ror(c.value)
	c.adc(c.value)
}

func (c *CPU) opDCP() {
	c.value--
	c.compare(c.acc, c.value)
}

func (c *CPU) opISC() {
	c.value++
	c.adc(^c.value)
}

func (c *CPU) opANC() {
	c.opAND()
	c.setFlag(STATUS_FLAG_CARRY, c.acc&0x80 != 0)
}

func (c *CPU) opALR() {
	c.acc &= c.value
	c.acc = c.lsr(c.acc)
}

func (c *CPU) opARR() {
	c.acc = (c.acc&c.value)>>1 | c.carry()<<7
	c.setZN(c.acc)
	c.setFlag(STATUS_FLAG_CARRY, c.acc&0x40 != 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, (c.acc>>6^c.acc>>5)&0x01 != 0)
}

// AXS (also SBX): X = (A & X) - value, setting carry like CMP.
func (c *CPU) opAXS() {
	t := c.acc & c.x
	c.setFlag(STATUS_FLAG_CARRY, t >= c.value)
	c.x = t - c.value
	c.setZN(c.x)
}

// XAA and LXA depend on analog effects. 0xEE is the commonly observed
// magic constant.
func (c *CPU) opXAA() {
	c.acc = (c.acc | 0xEE) & c.x & c.value
	c.setZN(c.acc)
}

func (c *CPU) opLXA() {
	c.acc = (c.acc | 0xEE) & c.value
	c.x = c.acc
	c.setZN(c.acc)
}

func (c *CPU) opLAS() {
	c.sp &= c.value
	c.acc = c.sp
	c.x = c.sp
	c.setZN(c.sp)
}

// unstableStore implements the SHA/SHX/SHY/TAS family: the stored
// value is ANDed with the base address high byte plus one and, when
// the index crossed a page, that value also replaces the high byte of
// the target address.
func (c *CPU) unstableStore(reg, idx uint8) {
	base := c.address - uint16(idx)
	c.value = reg & (uint8(base>>8) + 1)
	if base&0xFF00 != c.address&0xFF00 {
		c.address = uint16(c.value)<<8 | c.address&0x00FF
	}
}

func (c *CPU) opSHA() { c.unstableStore(c.acc&c.x, c.y) }
func (c *CPU) opSHX() { c.unstableStore(c.x, c.y) }
func (c *CPU) opSHY() { c.unstableStore(c.y, c.x) }

func (c *CPU) opTAS() {
	c.sp = c.acc & c.x
	c.unstableStore(c.sp, c.y)
}
