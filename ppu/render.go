package ppu

// renderPixel composes the pixel for the current dot and hands it to
// the output function.
func (p *PPU) renderPixel() {
	x, y := p.dot-1, p.scanline

	if !p.renderingEnabled() {
		// With rendering off the PPU shows the backdrop, unless
		// v points into palette RAM, in which case it shows that
		// entry.
		idx := uint16(PALETTE_RAM)
		if a := uint16(p.v) & PPU_ADDR_MASK; a >= PALETTE_RAM {
			idx = a
		}
		p.emit(x, y, p.read(idx))
		return
	}

	var bg, bgPal uint8
	if p.mask&MASK_RENDER_BG != 0 && (x >= 8 || p.mask&MASK_SHOW_LEFT_TILES != 0) {
		bit := uint16(0x8000) >> p.x
		if p.patLo&bit != 0 {
			bg |= 0x01
		}
		if p.patHi&bit != 0 {
			bg |= 0x02
		}
		if p.attrLo&bit != 0 {
			bgPal |= 0x01
		}
		if p.attrHi&bit != 0 {
			bgPal |= 0x02
		}
	}

	var fg, fgPal uint8
	var behind, zero bool
	if p.mask&MASK_RENDER_FG != 0 && (x >= 8 || p.mask&MASK_SHOW_LEFT_SPRITES != 0) {
		fg, fgPal, behind, zero = p.spritePixel(x)
	}

	addr := uint16(PALETTE_RAM)
	switch {
	case bg == 0 && fg == 0:
	case bg == 0:
		addr = PALETTE_RAM + 0x10 + uint16(fgPal)*4 + uint16(fg)
	case fg == 0:
		addr = PALETTE_RAM + uint16(bgPal)*4 + uint16(bg)
	default:
		if zero && x != 255 {
			p.status |= STATUS_SPRITE_0_HIT
		}
		if behind {
			addr = PALETTE_RAM + uint16(bgPal)*4 + uint16(bg)
		} else {
			addr = PALETTE_RAM + 0x10 + uint16(fgPal)*4 + uint16(fg)
		}
	}
	p.emit(x, y, p.read(addr))
}

// emit converts a palette entry to a colour.
func (p *PPU) emit(x, y int, entry uint8) {
	if p.output == nil {
		return
	}
	if p.mask&MASK_GREYSCALE != 0 {
		entry &= 0x30
	}
	p.output(x, y, SYSTEM_PALETTE[entry&0x3F])
}
