package mos6502

import (
	"testing"
)

// Base cycle counts for every opcode, branches not taken and no page
// crossed.
var baseCycles = [256]int{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

// Opcodes that spend an extra cycle when the index carries into the
// next page.
var pagePenalty = map[uint8]bool{
	0x11: true, 0x31: true, 0x51: true, 0x71: true, 0xB1: true, 0xD1: true, 0xF1: true, 0xB3: true,
	0x19: true, 0x39: true, 0x59: true, 0x79: true, 0xB9: true, 0xD9: true, 0xF9: true, 0xBB: true, 0xBE: true, 0xBF: true,
	0x1C: true, 0x1D: true, 0x3C: true, 0x3D: true, 0x5C: true, 0x5D: true, 0x7C: true, 0x7D: true,
	0xBC: true, 0xBD: true, 0xDC: true, 0xDD: true, 0xFC: true, 0xFD: true,
}

// instructionCycles runs the CPU from an instruction boundary until
// the following opcode fetch and returns the cycles in between.
func instructionCycles(c *CPU) int {
	start := c.fetches
	n := 0
	for c.fetches < start+2 {
		c.step()
		n++
	}
	return n - 1
}

func isBranch(op int) bool {
	return op&0x1F == 0x10
}

func TestCycleCounts(t *testing.T) {
	for _, idx := range []uint8{0x00, 0x20} {
		for op := 0; op < 256; op++ {
			if isBranch(op) {
				continue
			}
			// Operand 0x10F0 either way. Indexing by 0x20 carries
			// into page 0x11 for absolute and (zp),Y operands.
			c := newTestCPU(uint8(op), 0xF0, 0x10)
			c.mem.Data[0xF0] = 0xF0
			c.mem.Data[0xF1] = 0x10
			c.x, c.y = idx, idx

			want := baseCycles[op]
			if idx != 0 && pagePenalty[uint8(op)] {
				want++
			}
			if got := instructionCycles(c); got != want {
				t.Errorf("0x%02x %s (index 0x%02x): Got %d cycles, want %d", op, opcodes[op], idx, got, want)
			}
		}
	}
}

func TestBranchCycles(t *testing.T) {
	cases := []struct {
		origin uint16
		offset uint8
		zero   bool
		want   int
		wantPC uint16
	}{
		{0x8000, 0x02, true, 2, 0x8002},  // not taken
		{0x8000, 0x02, false, 3, 0x8004}, // taken
		{0x80F0, 0x20, false, 4, 0x8112}, // taken across a page
		{0x8010, 0xEE, false, 3, 0x8000}, // backwards
		{0x8004, 0xF0, false, 4, 0x7FF6}, // backwards across a page
	}

	for i, tc := range cases {
		c := newTestCPU()
		c.mem.Data[tc.origin] = 0xD0 // BNE
		c.mem.Data[tc.origin+1] = tc.offset
		c.SetPC(tc.origin)
		c.setFlag(STATUS_FLAG_ZERO, tc.zero)

		if got := instructionCycles(c); got != tc.want || c.pc != tc.wantPC+1 {
			t.Errorf("%d: Got %d cycles (pc 0x%04x), want %d (pc 0x%04x)", i, got, c.pc-1, tc.want, tc.wantPC)
		}
	}
}

func TestStepInstructionAfterBranch(t *testing.T) {
	c := newTestCPU(
		0xD0, 0x00, // BNE +0, not taken
		0xE8, // INX
		0xE8, // INX
	)
	c.setFlag(STATUS_FLAG_ZERO, true)

	c.StepInstruction()
	c.StepInstruction()
	if c.x != 1 || c.pc != 0x8003 {
		t.Errorf("Got x=%d pc=0x%04x, want 1 and 0x8003", c.x, c.pc)
	}
	c.StepInstruction()
	if c.x != 2 || c.pc != 0x8004 {
		t.Errorf("Got x=%d pc=0x%04x, want 2 and 0x8004", c.x, c.pc)
	}
}

func TestDivider(t *testing.T) {
	c := newTestCPU()
	c.SetDivider(11)
	cases := []struct {
		ticks      int
		wantCycles uint64
	}{
		{11, 0},
		{1, 1},
		{12, 2},
		{120, 12},
	}

	for i, tc := range cases {
		c.Tick(tc.ticks)
		if c.Cycles() != tc.wantCycles {
			t.Errorf("%d: Got %d cycles, want %d", i, c.Cycles(), tc.wantCycles)
		}
	}
}

func TestStall(t *testing.T) {
	c := newTestCPU()
	c.SetDivider(2)
	c.Stall(2)
	c.Tick(9)
	if c.Cycles() != 1 {
		t.Errorf("Got %d cycles, want 1", c.Cycles())
	}
}
