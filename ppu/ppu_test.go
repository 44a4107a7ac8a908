package ppu

import (
	"testing"

	"github.com/bdwalton/nescycle/memory"
)

// Dots executed from reset up to and including line 241, dot 1.
const dotsToVBlank = 82524

type fakeCPU struct {
	nmis   int
	stalls int
	cycles uint64
}

func (f *fakeCPU) EdgeNMI()         { f.nmis++ }
func (f *fakeCPU) Stall(cycles int) { f.stalls += cycles }
func (f *fakeCPU) Cycles() uint64   { return f.cycles }

// newTestPPU returns a PPU with flat VRAM below the palette and its
// registers installed over flat CPU RAM.
func newTestPPU() (*PPU, *fakeCPU, *memory.Memory) {
	vram := memory.New(0x4000)
	vram.Map(0x3EFF, memory.StandardRead, memory.StandardWrite)

	cpuMem := memory.New(0x10000)
	cpuMem.Map(0x1FFF, memory.StandardRead, memory.StandardWrite)
	cpuMem.Map(0x4013, memory.StandardRead, memory.StandardWrite)

	cpu := &fakeCPU{}
	p := New(vram, cpu, nil)
	p.Install(cpuMem)
	return p, cpu, cpuMem
}

func TestVBlankTiming(t *testing.T) {
	p, cpu, cpuMem := newTestPPU()
	frames := 0
	p.SetFrameFunc(func() { frames++ })
	cpuMem.Write(PPUCTRL, CTRL_GENERATE_NMI)

	p.Tick(dotsToVBlank - 1)
	if p.status&STATUS_VERTICAL_BLANK != 0 || cpu.nmis != 0 || frames != 0 {
		t.Errorf("vblank early: status=%08b nmis=%d frames=%d", p.status, cpu.nmis, frames)
	}
	if l, d := p.Position(); l != VBLANK_LINE || d != 1 {
		t.Errorf("Got position %d,%d, want %d,1", l, d, VBLANK_LINE)
	}

	p.Tick(1)
	if p.status&STATUS_VERTICAL_BLANK == 0 || cpu.nmis != 1 || frames != 1 {
		t.Errorf("vblank missing: status=%08b nmis=%d frames=%d", p.status, cpu.nmis, frames)
	}

	// Cleared at dot 1 of the pre-render line.
	p.Tick(20*DOTS_PER_LINE - 1)
	if l, d := p.Position(); l != PRERENDER_LINE || d != 1 {
		t.Fatalf("Got position %d,%d, want %d,1", l, d, PRERENDER_LINE)
	}
	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Errorf("vblank cleared early")
	}
	p.Tick(1)
	if p.status&STATUS_VERTICAL_BLANK != 0 {
		t.Errorf("vblank not cleared on pre-render line")
	}
}

func TestDivider(t *testing.T) {
	p, _, _ := newTestPPU()
	p.SetDivider(2)

	p.Tick(3*dotsToVBlank - 1)
	if p.status&STATUS_VERTICAL_BLANK != 0 {
		t.Errorf("vblank set after %d ticks", 3*dotsToVBlank-1)
	}
	p.Tick(1)
	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Errorf("vblank not set after %d ticks", 3*dotsToVBlank)
	}
}

func TestFrameLength(t *testing.T) {
	cases := []struct {
		mask uint8
		dots []int // length of frames 0, 1, 2
	}{
		{0, []int{89342, 89342, 89342}},
		{MASK_RENDER_BG, []int{89342, 89341, 89342}},
		{MASK_RENDER_FG, []int{89342, 89341, 89342}},
	}

	for i, tc := range cases {
		p, _, cpuMem := newTestPPU()
		cpuMem.Write(PPUMASK, tc.mask)
		for j, n := range tc.dots {
			p.Tick(n - 1)
			if p.Frame() != uint64(j) {
				t.Errorf("%d: frame %d ended after %d dots", i, j, n-1)
			}
			p.Tick(1)
			l, d := p.Position()
			if p.Frame() != uint64(j+1) || l != PRERENDER_LINE || d != 0 {
				t.Errorf("%d: Got frame %d at %d,%d after frame %d, want frame %d at %d,0", i, p.Frame(), l, d, j, j+1, PRERENDER_LINE)
			}
		}
	}
}

func TestNMIOnCtrlWrite(t *testing.T) {
	p, cpu, cpuMem := newTestPPU()
	p.Tick(dotsToVBlank)
	if cpu.nmis != 0 {
		t.Fatalf("NMI raised with generation off")
	}

	writes := []struct {
		val      uint8
		wantNMIs int
	}{
		{CTRL_GENERATE_NMI, 1},
		{CTRL_GENERATE_NMI, 1},
		{0, 1},
		{CTRL_GENERATE_NMI | CTRL_VRAM_ADD_INCREMENT, 2},
	}
	for i, w := range writes {
		cpuMem.Write(PPUCTRL, w.val)
		if cpu.nmis != w.wantNMIs {
			t.Errorf("%d: Got %d NMIs, want %d", i, cpu.nmis, w.wantNMIs)
		}
	}

	// Once the flag is read away enabling NMI does nothing.
	cpuMem.Write(PPUCTRL, 0)
	cpuMem.Read(PPUSTATUS)
	cpuMem.Write(PPUCTRL, CTRL_GENERATE_NMI)
	if cpu.nmis != 2 {
		t.Errorf("Got %d NMIs after status read, want 2", cpu.nmis)
	}
}

func TestVBlankSuppression(t *testing.T) {
	p, cpu, cpuMem := newTestPPU()
	cpuMem.Write(PPUCTRL, CTRL_GENERATE_NMI)
	p.Tick(dotsToVBlank - 1)

	if got := cpuMem.Read(PPUSTATUS); got&STATUS_VERTICAL_BLANK != 0 {
		t.Errorf("Got status 0x%02x before vblank", got)
	}
	p.Tick(1)
	if p.status&STATUS_VERTICAL_BLANK != 0 || cpu.nmis != 0 {
		t.Errorf("vblank not suppressed: status=%08b nmis=%d", p.status, cpu.nmis)
	}

	// Only for the one frame.
	p.Tick(89342)
	if p.status&STATUS_VERTICAL_BLANK == 0 || cpu.nmis != 1 {
		t.Errorf("vblank still suppressed: status=%08b nmis=%d", p.status, cpu.nmis)
	}
}

func TestBackdropWhenDisabled(t *testing.T) {
	p, _, cpuMem := newTestPPU()
	cpuMem.Write(PPUADDR, 0x3F)
	cpuMem.Write(PPUADDR, 0x00)
	cpuMem.Write(PPUDATA, 0x21)
	cpuMem.Write(PPUADDR, 0x00)
	cpuMem.Write(PPUADDR, 0x00)

	pixels := 0
	p.SetOutput(func(x, y int, rgb uint32) {
		pixels++
		if rgb != SYSTEM_PALETTE[0x21] {
			t.Fatalf("Got 0x%06x at %d,%d, want 0x%06x", rgb, x, y, SYSTEM_PALETTE[0x21])
		}
	})
	p.Tick(89342)
	if want := NES_RES_WIDTH * NES_RES_HEIGHT; pixels != want {
		t.Errorf("Got %d pixels, want %d", pixels, want)
	}
}

// solidBackground fills pattern tile 0 with colour 1 and sets that
// colour in background palette 0.
func solidBackground(p *PPU, cpuMem *memory.Memory, colour uint8) {
	for i := 0; i < 8; i++ {
		p.mem.Data[i] = 0xFF
	}
	cpuMem.Write(PPUADDR, 0x3F)
	cpuMem.Write(PPUADDR, 0x01)
	cpuMem.Write(PPUDATA, colour)
	cpuMem.Write(PPUADDR, 0x00)
	cpuMem.Write(PPUADDR, 0x00)
}

func TestBackgroundRender(t *testing.T) {
	p, _, cpuMem := newTestPPU()
	solidBackground(p, cpuMem, 0x16)
	cpuMem.Write(PPUMASK, MASK_RENDER_BG|MASK_SHOW_LEFT_TILES)

	var frame [NES_RES_HEIGHT][NES_RES_WIDTH]uint32
	p.SetOutput(func(x, y int, rgb uint32) { frame[y][x] = rgb })
	p.Tick(89342)

	for y := range frame {
		for x, got := range frame[y] {
			if got != SYSTEM_PALETTE[0x16] {
				t.Fatalf("Got 0x%06x at %d,%d, want 0x%06x", got, x, y, SYSTEM_PALETTE[0x16])
			}
		}
	}
}

func TestLeftColumnMask(t *testing.T) {
	p, _, cpuMem := newTestPPU()
	solidBackground(p, cpuMem, 0x16)
	cpuMem.Write(PPUMASK, MASK_RENDER_BG)

	var row [NES_RES_WIDTH]uint32
	p.SetOutput(func(x, y int, rgb uint32) {
		if y == 100 {
			row[x] = rgb
		}
	})
	p.Tick(89342)

	for x, got := range row {
		want := SYSTEM_PALETTE[0x16]
		if x < 8 {
			want = SYSTEM_PALETTE[0]
		}
		if got != want {
			t.Errorf("%d: Got 0x%06x, want 0x%06x", x, got, want)
		}
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, _, cpuMem := newTestPPU()
	solidBackground(p, cpuMem, 0x16)
	// Tile 1 is solid in the low plane.
	for i := 0x10; i < 0x18; i++ {
		p.mem.Data[i] = 0xFF
	}
	for i := range p.oam {
		p.oam[i] = 0xFF
	}
	copy(p.oam[:], []uint8{20, 1, 0, 30})
	cpuMem.Write(PPUMASK, MASK_RENDER_BG|MASK_RENDER_FG|MASK_SHOW_LEFT_TILES|MASK_SHOW_LEFT_SPRITES)

	hitLine := -1
	p.SetOutput(func(x, y int, rgb uint32) {
		if hitLine < 0 && p.status&STATUS_SPRITE_0_HIT != 0 {
			hitLine = y
		}
	})
	p.Tick(30 * DOTS_PER_LINE)

	// OAM y is one less than the first line drawn.
	if hitLine != 21 {
		t.Errorf("Got sprite 0 hit on line %d, want 21", hitLine)
	}
	if p.status&STATUS_SPRITE_OVERFLOW != 0 {
		t.Errorf("sprite overflow set with one sprite")
	}
}

func TestStateRoundTrip(t *testing.T) {
	p, _, cpuMem := newTestPPU()
	solidBackground(p, cpuMem, 0x16)
	cpuMem.Write(PPUMASK, MASK_RENDER_BG|MASK_RENDER_FG)
	p.Tick(50000)

	q, _, _ := newTestPPU()
	copy(q.mem.Data, p.mem.Data)
	if err := q.LoadState(p.SaveState()); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	p.Tick(100000)
	q.Tick(100000)
	if p.SaveState() != q.SaveState() {
		t.Errorf("restored PPU diverged:\n%s\n%s", p, q)
	}
}

func TestLoadStateRejects(t *testing.T) {
	p, _, _ := newTestPPU()
	good := p.SaveState()

	bad := []func(s *State){
		func(s *State) { s.Phase = NUM_STATES },
		func(s *State) { s.Cursor = 8 },
		func(s *State) { s.Scanline = 261 },
		func(s *State) { s.Dot = DOTS_PER_LINE },
		func(s *State) { s.SpriteCount = 9 },
	}
	for i, f := range bad {
		s := good
		f(&s)
		if err := p.LoadState(s); err == nil {
			t.Errorf("%d: LoadState accepted %+v", i, s)
		}
	}
	if p.SaveState() != good {
		t.Errorf("rejected state changed the PPU")
	}
}
