package ppu

import (
	"github.com/bdwalton/nescycle/memory"
)

// SYSTEM_PALETTE maps the 64 colour indices to packed 0xRRGGBB.
// http://www.thealmightyguru.com/Games/Hacking/Wiki/index.php/NES_Palette
var SYSTEM_PALETTE = [64]uint32{
	0x7C7C7C, 0x0000FC, 0x0000BC, 0x4428BC, 0x940084, 0xA80020, 0xA81000, 0x881400,
	0x503000, 0x007800, 0x006800, 0x005800, 0x004058, 0x000000, 0x000000, 0x000000,
	0xBCBCBC, 0x0078F8, 0x0058F8, 0x6844FC, 0xD800CC, 0xE40058, 0xF83800, 0xE45C10,
	0xAC7C00, 0x00B800, 0x00A800, 0x00A844, 0x008888, 0x000000, 0x000000, 0x000000,
	0xF8F8F8, 0x3CBCFC, 0x6888FC, 0x9878F8, 0xF878F8, 0xF85898, 0xF87858, 0xFCA044,
	0xF8B800, 0xB8F818, 0x58D854, 0x58F898, 0x00E8D8, 0x787878, 0x000000, 0x000000,
	0xFCFCFC, 0xA4E4FC, 0xB8B8F8, 0xD8B8F8, 0xF8B8F8, 0xF8A4C0, 0xF0D0B0, 0xFCE0A8,
	0xF8D878, 0xD8F878, 0xB8F8B8, 0xB8F8D8, 0x00FCFC, 0xF8D8F8, 0x000000, 0x000000,
}

// paletteIndex folds 0x3F00-0x3FFF onto the 32 bytes of palette RAM.
// The backdrop entries of the sprite palettes (0x3F10, 0x3F14, 0x3F18
// and 0x3F1C) are the background ones.
func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i&0x13 == 0x10 {
		i &^= 0x10
	}
	return i
}

func (p *PPU) readPalette(m *memory.Memory, addr uint16) uint8 {
	return p.palette[paletteIndex(addr)]
}

// Palette RAM only holds 6 bits per entry.
func (p *PPU) writePalette(m *memory.Memory, addr uint16, val uint8) {
	p.palette[paletteIndex(addr)] = val & 0x3F
}
