package ppu

// Rendering phases of a scanline. Visible lines and the pre-render
// line run INIT_VISIBLE for dot 0, BACKGROUND for dots 1-256, SPRITE
// for 257-320, BACKGROUND again for the first two tiles of the next
// line at 321-336 and DUMMY_NAMETABLE for 337-340. Lines 240-260 run
// VBLANK throughout. The last op of each state checks the dot and
// scanline thresholds and moves to the next state.
//
// https://www.nesdev.org/wiki/PPU_rendering
const (
	STATE_INIT_VISIBLE = iota
	STATE_BACKGROUND
	STATE_SPRITE
	STATE_DUMMY_NAMETABLE
	STATE_VBLANK
	NUM_STATES
)

// dotOp is the work of one dot.
type dotOp func(*PPU)

var dotOps [NUM_STATES][]dotOp

func init() {
	dotOps = [NUM_STATES][]dotOp{
		STATE_INIT_VISIBLE:    {(*PPU).startLine},
		STATE_BACKGROUND:      {(*PPU).fetchNametable, (*PPU).idle, (*PPU).fetchAttribute, (*PPU).idle, (*PPU).fetchPatternLow, (*PPU).idle, (*PPU).fetchPatternHigh, (*PPU).endTile},
		STATE_SPRITE:          {(*PPU).spriteNametable, (*PPU).idle, (*PPU).spriteAttribute, (*PPU).loadSprite, (*PPU).fetchSpriteLow, (*PPU).idle, (*PPU).fetchSpriteHigh, (*PPU).endSprite},
		STATE_DUMMY_NAMETABLE: {(*PPU).fetchNametable, (*PPU).idle, (*PPU).lastNametable, (*PPU).endLine},
		STATE_VBLANK:          {(*PPU).vblankDot},
	}
}

// step runs one dot.
func (p *PPU) step() {
	if p.renderingLine() {
		if (p.dot >= 2 && p.dot <= 257) || (p.dot >= 322 && p.dot <= 337) {
			p.shift()
		}
		if p.scanline >= 0 {
			p.evaluateSprites()
		}
	}
	p.lineEvents()

	op := dotOps[p.state][p.cursor]
	p.cursor++
	op(p)

	if p.scanline >= 0 && p.scanline < POSTRENDER_LINE && p.dot >= 1 && p.dot <= NES_RES_WIDTH {
		p.renderPixel()
	}
	p.dot++
}

// lineEvents handles the single dot events that don't belong to a
// fetch.
func (p *PPU) lineEvents() {
	if p.scanline != PRERENDER_LINE {
		return
	}
	if p.dot == 1 {
		p.status &^= STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	}
	if p.dot >= 280 && p.dot <= 304 && p.renderingEnabled() {
		p.v.copyY(p.t)
	}
}

func (p *PPU) idle() {}

func (p *PPU) next(state int) {
	p.state = state
	p.cursor = 0
}

func (p *PPU) startLine() {
	p.next(STATE_BACKGROUND)
}

// shift moves the background pipeline along one pixel.
func (p *PPU) shift() {
	p.patLo <<= 1
	p.patHi <<= 1
	p.attrLo <<= 1
	p.attrHi <<= 1
}

// loadShifters moves the latched tile into the low byte of the
// pipeline, which the shifts have just emptied.
func (p *PPU) loadShifters() {
	p.patLo = p.patLo&0xFF00 | uint16(p.loLatch)
	p.patHi = p.patHi&0xFF00 | uint16(p.hiLatch)
	p.attrLo &= 0xFF00
	p.attrHi &= 0xFF00
	if p.atLatch&0x01 != 0 {
		p.attrLo |= 0x00FF
	}
	if p.atLatch&0x02 != 0 {
		p.attrHi |= 0x00FF
	}
}

func (p *PPU) fetchNametable() {
	if !p.renderingEnabled() {
		return
	}
	p.loadShifters()
	p.ntLatch = p.read(p.v.tileAddr())
}

func (p *PPU) fetchAttribute() {
	if !p.renderingEnabled() {
		return
	}
	p.atLatch = p.read(p.v.attributeAddr()) >> p.v.attributeShift() & 0x03
}

func (p *PPU) backgroundTable() uint16 {
	if p.ctrl&CTRL_BACKGROUND_PATTERN_ADDR != 0 {
		return PATTERN_TABLE_1
	}
	return PATTERN_TABLE_0
}

func (p *PPU) fetchPatternLow() {
	if !p.renderingEnabled() {
		return
	}
	p.loLatch = p.read(p.backgroundTable() + uint16(p.ntLatch)*16 + p.v.fineY())
}

func (p *PPU) fetchPatternHigh() {
	if !p.renderingEnabled() {
		return
	}
	p.hiLatch = p.read(p.backgroundTable() + uint16(p.ntLatch)*16 + p.v.fineY() + 8)
}

func (p *PPU) endTile() {
	if p.renderingEnabled() {
		p.v.incrementX()
		if p.dot == 256 {
			p.v.incrementY()
		}
	}

	switch p.dot {
	case 256:
		p.next(STATE_SPRITE)
	case 336:
		p.next(STATE_DUMMY_NAMETABLE)
	default:
		p.cursor = 0
	}
}

// lastNametable is the second of the two unused nametable fetches at
// the end of a line. Odd frames drop the dot after it on the
// pre-render line when rendering is on.
func (p *PPU) lastNametable() {
	if !p.renderingEnabled() {
		return
	}
	p.ntLatch = p.read(p.v.tileAddr())
	if p.scanline == PRERENDER_LINE && p.frame&1 == 1 {
		p.endLine()
	}
}

// endLine finishes the line. The dot is left at -1 so that step's
// increment starts the next line at dot 0.
func (p *PPU) endLine() {
	p.dot = -1
	p.scanline++

	switch {
	case p.scanline > LAST_LINE:
		p.scanline = PRERENDER_LINE
		p.frame++
		p.next(STATE_INIT_VISIBLE)
	case p.scanline < POSTRENDER_LINE:
		p.next(STATE_INIT_VISIBLE)
	default:
		p.next(STATE_VBLANK)
	}
}

func (p *PPU) vblankDot() {
	if p.scanline == VBLANK_LINE && p.dot == 1 {
		p.enterVBlank()
	}

	if p.dot == DOTS_PER_LINE-1 {
		p.endLine()
		return
	}
	p.cursor = 0
}

// enterVBlank raises the vblank flag and, when enabled, NMI. A status
// read on the dot before cancels both for this frame.
func (p *PPU) enterVBlank() {
	if p.suppressVBlank {
		p.suppressVBlank = false
	} else {
		p.status |= STATUS_VERTICAL_BLANK
		if p.ctrl&CTRL_GENERATE_NMI != 0 {
			p.cpu.EdgeNMI()
		}
	}
	if p.frameFn != nil {
		p.frameFn()
	}
}
