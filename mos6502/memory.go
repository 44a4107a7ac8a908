package mos6502

// All CPU bus traffic goes through these, so every cycle the hardware
// spends on the bus is visible to the memory handlers, dummy reads
// included.

func (c *CPU) read(addr uint16) uint8 {
	return c.mem.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.mem.Write(addr, val)
}

// getStackAddr returns the address the next push writes to.
func (c *CPU) getStackAddr() uint16 {
	return STACK_PAGE + uint16(c.sp)
}

func (c *CPU) push(val uint8) {
	c.write(c.getStackAddr(), val)
	c.sp--
}

// peek reads the stack at the current pointer. Pulls increment the
// pointer first, in a separate cycle.
func (c *CPU) peek() uint8 {
	return c.read(c.getStackAddr())
}
