package ppu

type priority uint8

const (
	FRONT priority = iota
	BACK
)

// Sprite attribute bits. Bits 2-4 are not implemented and read 0.
const (
	SPRITE_PALETTE  = 0x03
	SPRITE_PRIORITY = 1 << 5
	SPRITE_FLIP_H   = 1 << 6
	SPRITE_FLIP_V   = 1 << 7

	spriteAttrMask = SPRITE_PALETTE | SPRITE_PRIORITY | SPRITE_FLIP_H | SPRITE_FLIP_V
)

type sprite struct {
	// Y position of top of sprite. Sprite data is delayed by one
	// scanline; you must subtract 1 from the sprite's Y
	// coordinate before writing it here. Hide a sprite by moving
	// it down offscreen, by writing any values between #$EF-#$FF
	// here.
	y uint8
	// For 8x8 sprites, this is the tile number of this sprite
	// within the pattern table selected in bit 3 of PPUCTRL
	// ($2000). For 8x16 sprites (bit 5 of PPUCTRL set), the PPU
	// ignores the pattern table selection and selects a pattern
	// table from bit 0 of this number.
	tileId uint8

	palette      uint8
	renderP      priority
	flipV, flipH bool

	// X position of left side of sprite.
	x uint8
}

// spriteFromBytes decodes the four OAM bytes of one sprite.
func spriteFromBytes(in []uint8) sprite {
	// 76543210 -> in[2]
	// ||||||||
	// ||||||++- Palette (4 to 7) of sprite
	// |||+++--- Unimplemented (read 0)
	// ||+------ Priority (0: in front of background; 1: behind background)
	// |+------- Flip sprite horizontally
	// +-------- Flip sprite vertically
	return sprite{
		y:       in[0],
		tileId:  in[1],
		palette: in[2] & SPRITE_PALETTE,
		renderP: priority((in[2] & SPRITE_PRIORITY) >> 5),
		flipH:   in[2]&SPRITE_FLIP_H != 0,
		flipV:   in[2]&SPRITE_FLIP_V != 0,
		x:       in[3],
	}
}

// patternAddr returns the address of the low pattern plane for the
// given row of the sprite, row counted from its top as displayed.
func (s sprite) patternAddr(row, height int, table uint16) uint16 {
	if s.flipV {
		row = height - 1 - row
	}

	tile := uint16(s.tileId)
	if height == 16 {
		table = (tile & 0x01) * PATTERN_TABLE_1
		tile &= 0xFE
		if row >= 8 {
			tile++
			row -= 8
		}
	}
	return table + tile*16 + uint16(row)
}

// writeOAM stores a byte of primary OAM, dropping the unimplemented
// attribute bits.
func (p *PPU) writeOAM(addr, val uint8) {
	if addr&0x03 == 2 {
		val &= spriteAttrMask
	}
	p.oam[addr] = val
}

func reverseBits(b uint8) uint8 {
	b = b&0xF0>>4 | b&0x0F<<4
	b = b&0xCC>>2 | b&0x33<<2
	b = b&0xAA>>1 | b&0x55<<1
	return b
}
