package ppu

import "fmt"

// loopy holds v or t, the internal VRAM address registers, and
// extracts and sets the components described below:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
//
// https://www.nesdev.org/wiki/PPU_scrolling
type loopy uint16

const (
	LOOPY_COARSE_X    = 0x001F
	LOOPY_COARSE_Y    = 0x03E0
	LOOPY_NAMETABLE_X = 0x0400
	LOOPY_NAMETABLE_Y = 0x0800
	LOOPY_FINE_Y      = 0x7000

	loopyHorizontal = LOOPY_COARSE_X | LOOPY_NAMETABLE_X
	loopyVertical   = LOOPY_COARSE_Y | LOOPY_NAMETABLE_Y | LOOPY_FINE_Y
)

func (l loopy) String() string {
	return fmt.Sprintf("%04x(fy=%d nt=%d%d cy=%d cx=%d)", uint16(l), l.fineY(), l.nametableY(), l.nametableX(), l.coarseY(), l.coarseX())
}

func (l loopy) coarseX() uint16 {
	return uint16(l) & LOOPY_COARSE_X
}

func (l *loopy) setCoarseX(n uint16) {
	*l = loopy(uint16(*l)&^LOOPY_COARSE_X | n&0x1F)
}

func (l loopy) coarseY() uint16 {
	return (uint16(l) & LOOPY_COARSE_Y) >> 5
}

func (l *loopy) setCoarseY(n uint16) {
	*l = loopy(uint16(*l)&^LOOPY_COARSE_Y | (n&0x1F)<<5)
}

func (l loopy) nametableX() uint16 {
	return (uint16(l) & LOOPY_NAMETABLE_X) >> 10
}

func (l loopy) nametableY() uint16 {
	return (uint16(l) & LOOPY_NAMETABLE_Y) >> 11
}

// setNametable takes the two nametable select bits of PPUCTRL.
func (l *loopy) setNametable(n uint8) {
	*l = loopy(uint16(*l)&^(LOOPY_NAMETABLE_X|LOOPY_NAMETABLE_Y) | uint16(n&0x03)<<10)
}

func (l loopy) fineY() uint16 {
	return (uint16(l) & LOOPY_FINE_Y) >> 12
}

func (l *loopy) setFineY(n uint16) {
	*l = loopy(uint16(*l)&^LOOPY_FINE_Y | (n&0x07)<<12)
}

// incrementX moves to the next tile, wrapping into the horizontally
// adjacent nametable after column 31.
func (l *loopy) incrementX() {
	if l.coarseX() == 31 {
		*l = loopy(uint16(*l)&^LOOPY_COARSE_X ^ LOOPY_NAMETABLE_X)
		return
	}
	*l++
}

// incrementY moves down one pixel row. Row 29 is the last row of
// tiles, so coarse Y wraps there and switches vertical nametable. A
// coarse Y of 30 or 31 (attribute memory) wraps at 31 without the
// switch.
func (l *loopy) incrementY() {
	if fy := l.fineY(); fy < 7 {
		l.setFineY(fy + 1)
		return
	}
	l.setFineY(0)

	switch y := l.coarseY(); y {
	case 29:
		l.setCoarseY(0)
		*l ^= LOOPY_NAMETABLE_Y
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

// copyX loads the horizontal components of t.
func (l *loopy) copyX(t loopy) {
	*l = *l&^loopyHorizontal | t&loopyHorizontal
}

// copyY loads the vertical components of t.
func (l *loopy) copyY(t loopy) {
	*l = *l&^loopyVertical | t&loopyVertical
}

// tileAddr is the nametable byte v points at.
func (l loopy) tileAddr() uint16 {
	return 0x2000 | uint16(l)&0x0FFF
}

// attributeAddr is the attribute byte covering the tile v points at.
func (l loopy) attributeAddr() uint16 {
	v := uint16(l)
	return 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
}

// attributeShift selects the quadrant of the attribute byte.
func (l loopy) attributeShift() uint8 {
	v := uint16(l)
	return uint8((v>>4)&0x04 | v&0x02)
}
