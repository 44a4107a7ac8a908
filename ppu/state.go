package ppu

import (
	"fmt"

	"github.com/bdwalton/nescycle/counter"
)

// State is a snapshot of the PPU, including its place in the dot
// sequence and the sprite evaluation in flight.
type State struct {
	Ctrl, Mask, Status, OAMAddr uint8
	V, T                        uint16
	X                           uint8
	W                           bool
	IOLatch, ReadBuffer         uint8
	SuppressVBlank              bool

	Scanline, Dot int
	Frame         uint64
	Phase, Cursor int

	NTLatch, ATLatch, LoLatch, HiLatch uint8
	PatLo, PatHi, AttrLo, AttrHi       uint16

	OAM       [OAM_SIZE]uint8
	Secondary [SECONDARY_OAM_SIZE]uint8
	Eval      EvalState

	SpriteCount    int
	SpriteZeroLine bool
	SpriteLo       [MAX_SPRITES]uint8
	SpriteHi       [MAX_SPRITES]uint8
	SpriteAttr     [MAX_SPRITES]uint8
	SpriteX        [MAX_SPRITES]uint8

	Palette [PALETTE_SIZE]uint8
	Divider counter.State
}

// EvalState is the sprite evaluator part of State.
type EvalState struct {
	State, N, M, Idx, Found         int
	Latch                           uint8
	Copying, Full, Done, SpriteZero bool
}

func (p *PPU) SaveState() State {
	e := p.eval
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status, OAMAddr: p.oamAddr,
		V: uint16(p.v), T: uint16(p.t), X: p.x, W: p.w,
		IOLatch: p.ioLatch, ReadBuffer: p.readBuffer, SuppressVBlank: p.suppressVBlank,
		Scanline: p.scanline, Dot: p.dot, Frame: p.frame, Phase: p.state, Cursor: p.cursor,
		NTLatch: p.ntLatch, ATLatch: p.atLatch, LoLatch: p.loLatch, HiLatch: p.hiLatch,
		PatLo: p.patLo, PatHi: p.patHi, AttrLo: p.attrLo, AttrHi: p.attrHi,
		OAM: p.oam, Secondary: p.secondary,
		Eval: EvalState{
			State: e.state, N: e.n, M: e.m, Idx: e.idx, Found: e.found, Latch: e.latch,
			Copying: e.copying, Full: e.full, Done: e.done, SpriteZero: e.zero,
		},
		SpriteCount: p.spriteCount, SpriteZeroLine: p.spriteZeroLine,
		SpriteLo: p.spriteLo, SpriteHi: p.spriteHi, SpriteAttr: p.spriteAttr, SpriteX: p.spriteX,
		Palette: p.palette,
		Divider: p.timer.State(),
	}
}

// LoadState restores a snapshot taken by SaveState. Positions that the
// dot sequence could never reach are rejected and leave the PPU as it
// was.
func (p *PPU) LoadState(s State) error {
	switch {
	case s.Phase < 0 || s.Phase >= NUM_STATES || s.Cursor < 0 || s.Cursor >= len(dotOps[s.Phase]):
		return fmt.Errorf("invalid PPU phase (state %d, step %d)", s.Phase, s.Cursor)
	case s.Scanline < PRERENDER_LINE || s.Scanline > LAST_LINE || s.Dot < 0 || s.Dot >= DOTS_PER_LINE:
		return fmt.Errorf("invalid PPU position (line %d, dot %d)", s.Scanline, s.Dot)
	case s.SpriteCount < 0 || s.SpriteCount > MAX_SPRITES || s.Eval.Idx < 0 || s.Eval.Idx >= SECONDARY_OAM_SIZE:
		return fmt.Errorf("invalid PPU sprite state (%d sprites, slot %d)", s.SpriteCount, s.Eval.Idx)
	}

	p.ctrl, p.mask, p.status, p.oamAddr = s.Ctrl, s.Mask, s.Status, s.OAMAddr
	p.v, p.t, p.x, p.w = loopy(s.V), loopy(s.T), s.X, s.W
	p.ioLatch, p.readBuffer, p.suppressVBlank = s.IOLatch, s.ReadBuffer, s.SuppressVBlank
	p.scanline, p.dot, p.frame, p.state, p.cursor = s.Scanline, s.Dot, s.Frame, s.Phase, s.Cursor
	p.ntLatch, p.atLatch, p.loLatch, p.hiLatch = s.NTLatch, s.ATLatch, s.LoLatch, s.HiLatch
	p.patLo, p.patHi, p.attrLo, p.attrHi = s.PatLo, s.PatHi, s.AttrLo, s.AttrHi
	p.oam, p.secondary = s.OAM, s.Secondary
	e := s.Eval
	p.eval = evaluator{
		state: e.State, n: e.N, m: e.M, idx: e.Idx, found: e.Found, latch: e.Latch,
		copying: e.Copying, full: e.Full, done: e.Done, zero: e.SpriteZero,
	}
	p.spriteCount, p.spriteZeroLine = s.SpriteCount, s.SpriteZeroLine
	p.spriteLo, p.spriteHi, p.spriteAttr, p.spriteX = s.SpriteLo, s.SpriteHi, s.SpriteAttr, s.SpriteX
	p.palette = s.Palette
	p.timer.SetState(s.Divider)
	return nil
}
