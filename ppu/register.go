package ppu

import (
	"github.com/bdwalton/nescycle/memory"
)

// readRegister serves CPU reads of 0x2000-0x3FFF. Write-only registers
// return whatever was last on the PPU's side of the data bus.
func (p *PPU) readRegister(m *memory.Memory, addr uint16) uint8 {
	switch PPUCTRL + addr&0x07 {
	case PPUSTATUS:
		p.ioLatch = p.status&0xE0 | p.ioLatch&0x1F
		p.status &^= STATUS_VERTICAL_BLANK
		p.w = false
		// Reading one dot before the flag goes up means it never
		// does this frame. Known-approximate: on hardware the
		// window and what is returned vary by a dot or so.
		if p.scanline == VBLANK_LINE && p.dot == 1 {
			p.suppressVBlank = true
		}
	case OAMDATA:
		p.ioLatch = p.oam[p.oamAddr]
		if p.renderingLine() && p.scanline >= 0 && p.eval.state == EVAL_CLEAR {
			p.ioLatch = 0xFF
		}
	case PPUDATA:
		p.ioLatch = p.readData()
	}
	return p.ioLatch
}

// writeRegister serves CPU writes of 0x2000-0x3FFF.
func (p *PPU) writeRegister(m *memory.Memory, addr uint16, val uint8) {
	p.ioLatch = val
	switch PPUCTRL + addr&0x07 {
	case PPUCTRL:
		// Enabling NMI while the vblank flag is up raises it
		// straight away.
		if p.ctrl&CTRL_GENERATE_NMI == 0 && val&CTRL_GENERATE_NMI != 0 && p.status&STATUS_VERTICAL_BLANK != 0 {
			p.cpu.EdgeNMI()
		}
		p.ctrl = val
		p.t.setNametable(val)
	case PPUMASK:
		p.mask = val
	case OAMADDR:
		p.oamAddr = val
	case OAMDATA:
		p.writeOAM(p.oamAddr, val)
		p.oamAddr++
	case PPUSCROLL:
		if !p.w {
			p.t.setCoarseX(uint16(val) >> 3)
			p.x = val & 0x07
		} else {
			p.t.setCoarseY(uint16(val) >> 3)
			p.t.setFineY(uint16(val) & 0x07)
		}
		p.w = !p.w
	case PPUADDR:
		if !p.w {
			p.t = loopy(uint16(val&0x3F)<<8 | uint16(p.t)&0x00FF)
		} else {
			p.t = loopy(uint16(p.t)&0xFF00 | uint16(val))
			p.v = p.t
		}
		p.w = !p.w
	case PPUDATA:
		p.write(uint16(p.v), val)
		p.vramIncrement()
	}
}

// readData is a PPUDATA read. Outside palette space the value comes
// from a buffer filled by the previous read. Palette reads are
// immediate but still refill the buffer, from the nametable byte that
// sits underneath the palette.
func (p *PPU) readData() uint8 {
	addr := uint16(p.v) & PPU_ADDR_MASK
	ret := p.readBuffer
	if addr >= PALETTE_RAM {
		ret = p.read(addr) | p.ioLatch&0xC0
		p.readBuffer = p.read(addr - 0x1000)
	} else {
		p.readBuffer = p.read(addr)
	}
	p.vramIncrement()
	return ret
}

// vramIncrement advances v after a PPUDATA access. While rendering the
// fetch logic owns v and the access bumps coarse X and Y instead.
func (p *PPU) vramIncrement() {
	if p.renderingLine() {
		p.v.incrementX()
		p.v.incrementY()
		return
	}

	x := uint16(CTRL_INCR_ACROSS)
	if p.ctrl&CTRL_VRAM_ADD_INCREMENT != 0 {
		x = CTRL_INCR_DOWN
	}
	p.v = loopy((uint16(p.v) + x) & 0x7FFF)
}

// writeDMA copies a page of CPU memory into OAM, starting at OAMADDR.
// The CPU is held off the bus for 513 cycles, plus one to align when
// the write lands on an odd cycle.
func (p *PPU) writeDMA(m *memory.Memory, addr uint16, val uint8) {
	stall := 513
	if p.cpu.Cycles()&1 == 1 {
		stall++
	}
	p.log.Logf("ppu", "OAM DMA from page 0x%02x, %d cycle stall", val, stall)

	var page [OAM_SIZE]uint8
	m.At(uint16(val) << 8).CopyTo(page[:])
	for i, b := range page {
		p.writeOAM(p.oamAddr+uint8(i), b)
	}
	p.cpu.Stall(stall)
}
