package ppu

// Sprite evaluation states.
const (
	EVAL_IDLE = iota
	EVAL_CLEAR
	EVAL_EVALUATE
)

// evaluator is the sprite evaluation state machine that runs across
// dots 1-256 of each visible line, building secondary OAM for the next
// line.
//
// https://www.nesdev.org/wiki/PPU_sprite_evaluation
type evaluator struct {
	state   int
	n, m    int   // sprite number and byte within the sprite
	idx     int   // next free byte of secondary OAM
	found   int   // sprites copied so far
	latch   uint8 // the byte read on the odd dot
	copying bool  // part way through copying a sprite in range
	full    bool  // 8 sprites found; only overflow checks remain
	done    bool  // every sprite has been looked at
	zero    bool  // sprite 0 landed in secondary OAM
}

func (p *PPU) inRange(y uint8) bool {
	diff := p.scanline - int(y)
	return diff >= 0 && diff < p.spriteHeight()
}

// evaluateSprites runs one dot of sprite evaluation.
func (p *PPU) evaluateSprites() {
	e := &p.eval
	switch {
	case p.dot == 1:
		e.state = EVAL_CLEAR
	case p.dot == 65:
		*e = evaluator{state: EVAL_EVALUATE}
	case p.dot == 257:
		e.state = EVAL_IDLE
	}

	switch e.state {
	case EVAL_CLEAR:
		if p.dot&1 == 1 {
			e.latch = 0xFF
		} else {
			p.secondary[p.dot/2-1] = e.latch
		}
	case EVAL_EVALUATE:
		if p.dot&1 == 1 {
			e.latch = p.oam[(e.n*4+e.m)&0xFF]
		} else {
			p.evaluateWrite()
		}
	}
}

// evaluateWrite is the even dot of evaluation, where the byte read on
// the odd dot is written to secondary OAM or checked for overflow.
func (p *PPU) evaluateWrite() {
	e := &p.eval
	switch {
	case e.done:
		// The hardware keeps reading the y of every sprite and
		// failing to write it.
		e.n = (e.n + 1) & 0x3F

	case e.full:
		// Having found 8 sprites the PPU keeps checking y values,
		// but it increments m along with n when a sprite is out of
		// range, so it ends up checking tile numbers, attributes
		// and x positions as though they were y values.
		if p.inRange(e.latch) {
			p.status |= STATUS_SPRITE_OVERFLOW
			e.done = true
			return
		}
		e.m = (e.m + 1) & 0x03
		e.n++
		if e.n == 64 {
			e.n = 0
			e.done = true
		}

	case e.copying:
		p.secondary[e.idx] = e.latch
		e.idx++
		e.m++
		if e.m < 4 {
			return
		}
		e.m = 0
		e.copying = false
		e.found++
		p.nextSprite()
		if e.found == MAX_SPRITES && !e.done {
			e.full = true
		}

	default:
		p.secondary[e.idx] = e.latch
		if !p.inRange(e.latch) {
			p.nextSprite()
			return
		}
		if e.n == 0 {
			e.zero = true
		}
		e.copying = true
		e.idx++
		e.m = 1
	}
}

func (p *PPU) nextSprite() {
	e := &p.eval
	e.n++
	if e.n == 64 {
		e.n = 0
		e.done = true
	}
}

func (p *PPU) spriteTable() uint16 {
	if p.ctrl&CTRL_SPRITE_PATTERN_ADDR != 0 {
		return PATTERN_TABLE_1
	}
	return PATTERN_TABLE_0
}

// slot is the sprite slot being fetched during dots 257-320.
func (p *PPU) slot() int {
	return (p.dot - 257) / 8
}

// spriteNametable is the first dot of each sprite fetch. The PPU puts a
// nametable address on the bus that nothing uses. The first of them
// also finishes the background for the line.
func (p *PPU) spriteNametable() {
	if p.dot == 257 {
		// Cleared with rendering off too, so turning it back on mid
		// frame doesn't draw sprites left from an earlier line.
		p.spriteCount, p.spriteZeroLine = 0, false
	}
	if !p.renderingEnabled() {
		return
	}
	if p.dot == 257 {
		p.loadShifters()
		p.v.copyX(p.t)
		if p.scanline >= 0 {
			p.spriteCount, p.spriteZeroLine = p.eval.found, p.eval.zero
		}
	}
	p.oamAddr = 0
	p.read(p.v.tileAddr())
}

func (p *PPU) spriteAttribute() {
	if !p.renderingEnabled() {
		return
	}
	p.read(p.v.tileAddr())
}

// loadSprite latches attributes and x position for the slot. Empty
// slots get a transparent pattern.
func (p *PPU) loadSprite() {
	i := p.slot()
	p.spriteLo[i], p.spriteHi[i] = 0, 0
	p.spriteAttr[i], p.spriteX[i] = 0xFF, 0xFF
	if i < p.spriteCount {
		p.spriteAttr[i] = p.secondary[i*4+2]
		p.spriteX[i] = p.secondary[i*4+3]
	}
}

// spritePatternAddr is the address of the low plane of the slot's
// current row. Empty slots fetch tile 0xFF.
func (p *PPU) spritePatternAddr() uint16 {
	i := p.slot()
	if i >= p.spriteCount {
		s := sprite{tileId: 0xFF}
		return s.patternAddr(0, p.spriteHeight(), p.spriteTable())
	}
	s := spriteFromBytes(p.secondary[i*4 : i*4+4])
	return s.patternAddr(p.scanline-int(s.y), p.spriteHeight(), p.spriteTable())
}

func (p *PPU) fetchSpriteLow() {
	if !p.renderingEnabled() {
		return
	}
	v := p.read(p.spritePatternAddr())
	if i := p.slot(); i < p.spriteCount {
		p.spriteLo[i] = p.orient(i, v)
	}
}

func (p *PPU) fetchSpriteHigh() {
	if !p.renderingEnabled() {
		return
	}
	v := p.read(p.spritePatternAddr() + 8)
	if i := p.slot(); i < p.spriteCount {
		p.spriteHi[i] = p.orient(i, v)
	}
}

// orient stores patterns so that bit 7 is always the leftmost pixel.
func (p *PPU) orient(i int, v uint8) uint8 {
	if p.spriteAttr[i]&SPRITE_FLIP_H != 0 {
		return reverseBits(v)
	}
	return v
}

func (p *PPU) endSprite() {
	if p.dot == 320 {
		p.next(STATE_BACKGROUND)
		return
	}
	p.cursor = 0
}

// spritePixel returns the first opaque sprite pixel at x, if any.
func (p *PPU) spritePixel(x int) (pixel, palette uint8, behind, zero bool) {
	for i := 0; i < p.spriteCount; i++ {
		off := x - int(p.spriteX[i])
		if off < 0 || off > 7 {
			continue
		}
		bit := uint8(0x80) >> off
		var px uint8
		if p.spriteLo[i]&bit != 0 {
			px |= 0x01
		}
		if p.spriteHi[i]&bit != 0 {
			px |= 0x02
		}
		if px == 0 {
			continue
		}
		a := p.spriteAttr[i]
		return px, a & SPRITE_PALETTE, a&SPRITE_PRIORITY != 0, i == 0 && p.spriteZeroLine
	}
	return 0, 0, false, false
}
